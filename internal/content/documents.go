package content

import (
	"fmt"

	"relife/internal/domain"
)

type statsDoc struct {
	Intelligence int `yaml:"intelligence"`
	Stamina      int `yaml:"stamina"`
	Charisma     int `yaml:"charisma"`
}

func (s statsDoc) stats() domain.Stats {
	return domain.Stats{Intelligence: s.Intelligence, Stamina: s.Stamina, Charisma: s.Charisma}
}

type cardDoc struct {
	ID          string            `yaml:"id"`
	Type        domain.CardType   `yaml:"type"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Cost        int               `yaml:"cost"`
	Effect      domain.EffectSpec `yaml:"effect"`
	Count       int               `yaml:"count"`
}

type levelDoc struct {
	Name          string         `yaml:"name"`
	RequiredStats map[string]int `yaml:"required_stats"`
	Salary        []int          `yaml:"salary"`
}

type jobDoc struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Category domain.StatType `yaml:"category"`
	Skill    domain.StatType `yaml:"skill"`
	Levels   []levelDoc      `yaml:"levels"`
}

type dreamDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Condition   string `yaml:"condition"`
}

type characterDoc struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	InitialMoney int       `yaml:"initial_money"`
	InitialStats statsDoc  `yaml:"initial_stats"`
	Description  string    `yaml:"description"`
	Dream        *dreamDoc `yaml:"dream"`
}

type targetDoc struct {
	Type   domain.TargetKind `yaml:"type"`
	Count  int               `yaml:"count"`
	JobIDs []string          `yaml:"job_ids"`
}

type eventDoc struct {
	ID          string            `yaml:"id"`
	Turn        int               `yaml:"turn"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Target      targetDoc         `yaml:"target"`
	Effect      domain.EffectSpec `yaml:"effect"`
	Prizes      []int             `yaml:"prizes"`
}

type eventsDoc struct {
	Fixed  []eventDoc `yaml:"fixed"`
	Random []eventDoc `yaml:"random"`
}

type outcomeDoc struct {
	Description string            `yaml:"description"`
	Probability float64           `yaml:"probability"`
	Effect      domain.EffectSpec `yaml:"effect"`
}

type locationDoc struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Outcomes []outcomeDoc `yaml:"outcomes"`
}

type achievementDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Score       int    `yaml:"score"`
	Threshold   int    `yaml:"threshold"`
}

type achievementsDoc struct {
	Thresholds []achievementDoc `yaml:"thresholds"`
	Unique     []achievementDoc `yaml:"unique"`
	DreamName  string           `yaml:"dream_name"`
}

func (d cardDoc) toDomain() (domain.CardDef, error) {
	eff, err := d.Effect.Effect()
	if err != nil {
		return domain.CardDef{}, fmt.Errorf("card %s: %w", d.ID, err)
	}
	return domain.CardDef{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        d.Type,
		Cost:        d.Cost,
		Effect:      eff,
		Count:       d.Count,
	}, nil
}

func (d jobDoc) toDomain() (domain.Job, error) {
	job := domain.Job{ID: d.ID, Name: d.Name, Category: d.Category, Skill: d.Skill}
	for i, l := range d.Levels {
		req := domain.Requirements{}
		for k, v := range l.RequiredStats {
			stat := domain.StatType(k)
			if !stat.Valid() {
				return domain.Job{}, fmt.Errorf("job %s level %d: unknown stat %q", d.ID, i, k)
			}
			req[stat] = v
		}
		job.Levels = append(job.Levels, domain.JobLevel{Name: l.Name, RequiredStats: req, Salary: l.Salary})
	}
	return job, nil
}

func (d characterDoc) toDomain() domain.Character {
	c := domain.Character{
		ID:           d.ID,
		Name:         d.Name,
		InitialMoney: d.InitialMoney,
		InitialStats: d.InitialStats.stats(),
		Description:  d.Description,
	}
	if d.Dream != nil {
		c.Dream = &domain.Dream{Name: d.Dream.Name, Description: d.Dream.Description, Condition: d.Dream.Condition}
	}
	return c
}

func (d eventDoc) toDomain() (domain.EventDef, error) {
	eff, err := d.Effect.Effect()
	if err != nil {
		return domain.EventDef{}, fmt.Errorf("event %s: %w", d.ID, err)
	}
	kind := d.Target.Type
	if kind == "" {
		kind = domain.TargetAll
	}
	return domain.EventDef{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Turn:        d.Turn,
		Target:      domain.Target{Kind: kind, Count: d.Target.Count, JobIDs: d.Target.JobIDs},
		Effect:      eff,
		Prizes:      d.Prizes,
	}, nil
}

func (d locationDoc) toDomain() (domain.Location, error) {
	loc := domain.Location{ID: d.ID, Name: d.Name}
	for i, o := range d.Outcomes {
		eff, err := o.Effect.Effect()
		if err != nil {
			return domain.Location{}, fmt.Errorf("location %s outcome %d: %w", d.ID, i, err)
		}
		loc.Outcomes = append(loc.Outcomes, domain.Outcome{Probability: o.Probability, Description: o.Description, Effect: eff})
	}
	return loc, nil
}

func (d achievementDoc) achievement() domain.Achievement {
	return domain.Achievement{ID: d.ID, Name: d.Name, Description: d.Description, Score: d.Score}
}
