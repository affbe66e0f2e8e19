package content

import (
	"errors"
	"fmt"
	"math"

	"relife/internal/domain"
)

// ErrInvalidContent wraps every table validation failure.
var ErrInvalidContent = errors.New("invalid content")

const probabilityTolerance = 0.01

// Validate checks cross references and shape constraints of the tables.
// All problems are reported together.
func Validate(t *domain.Tables) error {
	var errs []error
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidContent, fmt.Sprintf(format, args...)))
	}

	if len(t.Cards) == 0 {
		report("no cards")
	}
	seen := map[string]bool{}
	for _, c := range t.Cards {
		if c.ID == "" || seen[c.ID] {
			report("card id %q is empty or duplicated", c.ID)
		}
		seen[c.ID] = true
		switch c.Type {
		case domain.CardStudy, domain.CardWork, domain.CardExplore, domain.CardFunction:
		default:
			report("card %s: unknown type %q", c.ID, c.Type)
		}
		if c.Effect == nil {
			report("card %s: missing effect", c.ID)
		}
		if c.Count < 0 || c.Cost < 0 {
			report("card %s: negative count or cost", c.ID)
		}
		if sp, ok := c.Effect.(domain.Special); ok && sp.Handler == domain.HandlerInvalid && c.Type != domain.CardFunction {
			report("card %s: invalidate cards must be function cards", c.ID)
		}
	}

	jobs := map[string]bool{}
	for _, j := range t.Jobs {
		if j.ID == "" || jobs[j.ID] {
			report("job id %q is empty or duplicated", j.ID)
		}
		jobs[j.ID] = true
		if !j.Category.Valid() {
			report("job %s: unknown category %q", j.ID, j.Category)
		}
		if j.Skill != "" && !j.Skill.Valid() {
			report("job %s: unknown skill stat %q", j.ID, j.Skill)
		}
		if len(j.Levels) != domain.TopJobLevel+1 {
			report("job %s: want %d levels, got %d", j.ID, domain.TopJobLevel+1, len(j.Levels))
		}
		for i, l := range j.Levels {
			if len(l.Salary) == 0 {
				report("job %s level %d: empty salary list", j.ID, i)
			}
		}
	}

	seen = map[string]bool{}
	for _, c := range t.Characters {
		if c.ID == "" || seen[c.ID] {
			report("character id %q is empty or duplicated", c.ID)
		}
		seen[c.ID] = true
		if c.InitialMoney < 0 || c.InitialStats.Intelligence < 0 || c.InitialStats.Stamina < 0 || c.InitialStats.Charisma < 0 {
			report("character %s: negative starting values", c.ID)
		}
		if c.Dream != nil && c.Dream.Condition == "" {
			report("character %s: dream without condition", c.ID)
		}
	}

	turns := map[int]bool{}
	for _, ev := range t.FixedEvents {
		if ev.Turn < 1 || turns[ev.Turn] {
			report("fixed event %s: turn %d is invalid or taken", ev.ID, ev.Turn)
		}
		turns[ev.Turn] = true
		errs = append(errs, validateEvent(ev, jobs)...)
	}
	if len(t.RandomEvents) == 0 {
		report("random event pool is empty")
	}
	for _, ev := range t.RandomEvents {
		errs = append(errs, validateEvent(ev, jobs)...)
	}

	seen = map[string]bool{}
	for _, loc := range t.Locations {
		if loc.ID == "" || seen[loc.ID] {
			report("location id %q is empty or duplicated", loc.ID)
		}
		seen[loc.ID] = true
		if len(loc.Outcomes) == 0 {
			report("location %s: no outcomes", loc.ID)
			continue
		}
		sum := 0.0
		for _, o := range loc.Outcomes {
			sum += o.Probability
		}
		if math.Abs(sum-1) > probabilityTolerance {
			report("location %s: probabilities sum to %.3f", loc.ID, sum)
		}
	}

	return errors.Join(errs...)
}

func validateEvent(ev domain.EventDef, jobs map[string]bool) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: event %s: %s", ErrInvalidContent, ev.ID, fmt.Sprintf(format, args...)))
	}
	if ev.Effect == nil {
		fail("missing effect")
	}
	switch ev.Target.Kind {
	case domain.TargetAll, domain.TargetRichest, domain.TargetPoorest, domain.TargetHasJob:
	case domain.TargetSpecificJob:
		if len(ev.Target.JobIDs) == 0 {
			fail("specific_job target without job ids")
		}
		for _, id := range ev.Target.JobIDs {
			if !jobs[id] {
				fail("unknown job %q", id)
			}
		}
	default:
		fail("unknown target %q", ev.Target.Kind)
	}
	return errs
}
