package content

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"relife/internal/domain"
)

// DreamEvaluator compiles character dream conditions into CEL programs.
// Conditions see a single `player` map with the final player state.
type DreamEvaluator struct {
	programs map[string]cel.Program
}

// NewDreamEvaluator compiles the dream condition of every character.
func NewDreamEvaluator(chars []domain.Character) (*DreamEvaluator, error) {
	env, err := cel.NewEnv(cel.Variable("player", cel.MapType(cel.StringType, cel.DynType)))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ev := &DreamEvaluator{programs: map[string]cel.Program{}}
	for _, c := range chars {
		if c.Dream == nil {
			continue
		}
		if _, ok := ev.programs[c.Dream.Condition]; ok {
			continue
		}
		ast, issues := env.Compile(c.Dream.Condition)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w: character %s dream: %v", ErrInvalidContent, c.ID, issues.Err())
		}
		switch out := ast.OutputType().String(); out {
		case "bool", "dyn":
		default:
			return nil, fmt.Errorf("%w: character %s dream must be boolean, got %s", ErrInvalidContent, c.ID, out)
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("character %s dream: %w", c.ID, err)
		}
		ev.programs[c.Dream.Condition] = prg
	}
	return ev, nil
}

// Achieved evaluates the dream condition against p. Unknown or failing conditions are not achieved.
func (e *DreamEvaluator) Achieved(p domain.Player, dream domain.Dream) bool {
	if e == nil {
		return false
	}
	prg, ok := e.programs[dream.Condition]
	if !ok {
		return false
	}
	out, _, err := prg.Eval(map[string]any{"player": PlayerVars(p)})
	if err != nil {
		return false
	}
	achieved, ok := out.Value().(bool)
	return ok && achieved
}

// PlayerVars is the view of a player exposed to content expressions.
func PlayerVars(p domain.Player) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"character_id": p.CharacterID,
		"money":        int64(p.Money),
		"job_id":       p.JobID,
		"job_level":    int64(p.JobLevel),
		"performance":  int64(p.Performance),
		"employed":     p.Employed(),
		"job_changes":  int64(p.JobChangeCount),
		"hand_size":    int64(len(p.Hand)),
		"stats": map[string]any{
			"intelligence": int64(p.Stats.Intelligence),
			"stamina":      int64(p.Stats.Stamina),
			"charisma":     int64(p.Stats.Charisma),
		},
	}
}
