// Package content loads the declarative game tables: cards, jobs, characters, events, explore
// locations and achievements. The built-in set is embedded; a directory with the same file names
// replaces it.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"relife/internal/domain"
)

// Table file names inside a content directory.
const (
	CardsFile        = "cards.yaml"
	JobsFile         = "jobs.yaml"
	CharactersFile   = "characters.yaml"
	EventsFile       = "events.yaml"
	LocationsFile    = "locations.yaml"
	AchievementsFile = "achievements.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Catalog is a validated content set ready to be injected into the engine.
type Catalog struct {
	Tables domain.Tables
	Dreams *DreamEvaluator
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
	defaultErr     error
)

// Default returns the embedded content. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Load(sub)
	})
	return defaultCatalog, defaultErr
}

// LoadDir loads a content directory from disk.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Open returns the content in dir, or the embedded content when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return LoadDir(dir)
}

// Load reads, converts and validates every table in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		cards     []cardDoc
		jobs      []jobDoc
		chars     []characterDoc
		events    eventsDoc
		locations []locationDoc
		achieve   achievementsDoc
	)
	files := []struct {
		name string
		into any
	}{
		{CardsFile, &cards},
		{JobsFile, &jobs},
		{CharactersFile, &chars},
		{EventsFile, &events},
		{LocationsFile, &locations},
		{AchievementsFile, &achieve},
	}
	for _, f := range files {
		if err := decodeFile(fsys, f.name, f.into); err != nil {
			return nil, err
		}
	}

	var t domain.Tables
	for _, d := range cards {
		c, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		t.Cards = append(t.Cards, c)
	}
	for _, d := range jobs {
		j, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		t.Jobs = append(t.Jobs, j)
	}
	for _, d := range chars {
		t.Characters = append(t.Characters, d.toDomain())
	}
	for _, d := range events.Fixed {
		ev, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		t.FixedEvents = append(t.FixedEvents, ev)
	}
	for _, d := range events.Random {
		ev, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		t.RandomEvents = append(t.RandomEvents, ev)
	}
	for _, d := range locations {
		loc, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		t.Locations = append(t.Locations, loc)
	}
	for _, d := range achieve.Thresholds {
		t.Achievements.Thresholds = append(t.Achievements.Thresholds, domain.ThresholdAchievement{
			Achievement: d.achievement(),
			Threshold:   d.Threshold,
		})
	}
	sort.SliceStable(t.Achievements.Thresholds, func(a, b int) bool {
		return t.Achievements.Thresholds[a].Threshold > t.Achievements.Thresholds[b].Threshold
	})
	for _, d := range achieve.Unique {
		t.Achievements.Unique = append(t.Achievements.Unique, d.achievement())
	}
	t.Achievements.DreamName = achieve.DreamName

	if err := Validate(&t); err != nil {
		return nil, err
	}
	dreams, err := NewDreamEvaluator(t.Characters)
	if err != nil {
		return nil, err
	}
	return &Catalog{Tables: t, Dreams: dreams}, nil
}

func decodeFile(fsys fs.FS, name string, into any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
