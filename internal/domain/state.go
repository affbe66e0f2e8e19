package domain

// Phase represents the stage of a turn.
type Phase string

const (
	// PhaseSetup is the transient state before the first event is drawn.
	PhaseSetup Phase = "setup"
	// PhaseEvent waits for the current event to be confirmed.
	PhaseEvent Phase = "event"
	// PhaseSalary is entered once salaries and job skills have been applied.
	PhaseSalary Phase = "salary"
	// PhaseAction is the per-player card play phase.
	PhaseAction Phase = "action"
	// PhaseDraw is entered after every player has acted.
	PhaseDraw Phase = "draw"
	// PhaseGameOver is terminal.
	PhaseGameOver Phase = "game_over"
)

// StatType names one of the three player stats.
type StatType string

const (
	StatIntelligence StatType = "intelligence"
	StatStamina      StatType = "stamina"
	StatCharisma     StatType = "charisma"
)

// AllStats lists the stats in declaration order. Ties between stats resolve in this order.
var AllStats = []StatType{StatIntelligence, StatStamina, StatCharisma}

// Valid reports whether s names a known stat.
func (s StatType) Valid() bool {
	switch s {
	case StatIntelligence, StatStamina, StatCharisma:
		return true
	}
	return false
}

// Stats holds the three non-negative player attributes.
type Stats struct {
	Intelligence int `json:"intelligence"`
	Stamina      int `json:"stamina"`
	Charisma     int `json:"charisma"`
}

// Get returns the value of a single stat.
func (s Stats) Get(stat StatType) int {
	switch stat {
	case StatIntelligence:
		return s.Intelligence
	case StatStamina:
		return s.Stamina
	case StatCharisma:
		return s.Charisma
	}
	return 0
}

// With returns a copy of s with stat set to value.
func (s Stats) With(stat StatType, value int) Stats {
	switch stat {
	case StatIntelligence:
		s.Intelligence = value
	case StatStamina:
		s.Stamina = value
	case StatCharisma:
		s.Charisma = value
	}
	return s
}

// Total sums all stats.
func (s Stats) Total() int {
	return s.Intelligence + s.Stamina + s.Charisma
}

// Requirements is a partial set of stat thresholds. A missing stat is unconstrained.
type Requirements map[StatType]int

// Dream is a character's personal goal, evaluated once at game end.
type Dream struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Condition is a boolean expression over the final player state.
	Condition string `json:"condition"`
}

// Character is an immutable player template.
type Character struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	InitialMoney int    `json:"initial_money"`
	InitialStats Stats  `json:"initial_stats"`
	Description  string `json:"description"`
	Dream        *Dream `json:"dream,omitempty"`
}

// JobLevel is one rung of a job ladder.
type JobLevel struct {
	Name          string       `json:"name"`
	RequiredStats Requirements `json:"required_stats"`
	// Salary is indexed by performance relative to the level.
	Salary []int `json:"salary"`
}

// Job is an immutable career definition with exactly three levels.
type Job struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category StatType `json:"category"`
	// Skill is the stat raised by one every salary phase; empty means no passive skill.
	Skill  StatType   `json:"skill,omitempty"`
	Levels []JobLevel `json:"levels"`
}

// CardType classifies a card.
type CardType string

const (
	CardStudy    CardType = "study"
	CardWork     CardType = "work"
	CardExplore  CardType = "explore"
	CardFunction CardType = "function"
)

// CardDef is a card template. Count copies are placed in a fresh deck.
type CardDef struct {
	ID          string
	Name        string
	Description string
	Type        CardType
	Cost        int
	Effect      Effect
	Count       int
}

// Card is a single physical card instance.
type Card struct {
	ID     string
	DefID  string
	Name   string
	Type   CardType
	Cost   int
	Effect Effect
}

// Handler returns the special handler of the card, or "" for non-special effects.
func (c Card) Handler() Handler {
	if sp, ok := c.Effect.(Special); ok {
		return sp.Handler
	}
	return ""
}

// IsInvalid reports whether the card is a reaction-only invalidate card.
func (c Card) IsInvalid() bool {
	return c.Handler() == HandlerInvalid
}

// Blockable reports whether playing the card opens a reaction chain.
func (c Card) Blockable() bool {
	if c.Type != CardFunction {
		return false
	}
	h := c.Handler()
	return h != HandlerInvalid && h != HandlerSabotage
}

// Player holds the mutable state of a participant.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CharacterID string `json:"character_id"`
	Stats       Stats  `json:"stats"`
	Money       int    `json:"money"`
	// JobID is empty while unemployed.
	JobID       string `json:"job_id,omitempty"`
	JobLevel    int    `json:"job_level"`
	Performance int    `json:"performance"`
	Hand        []Card `json:"hand"`
	IsSkipTurn  bool   `json:"is_skip_turn"`
	IsAI        bool   `json:"is_ai"`

	FirstJobTurn       *int `json:"first_job_turn,omitempty"`
	FirstPromotionTurn *int `json:"first_promotion_turn,omitempty"`
	JobChangeCount     int  `json:"job_change_count"`
}

// Employed reports whether the player currently holds a job.
func (p Player) Employed() bool {
	return p.JobID != ""
}

// TargetKind selects which players an event applies to.
type TargetKind string

const (
	TargetAll         TargetKind = "all"
	TargetRichest     TargetKind = "richest"
	TargetPoorest     TargetKind = "poorest"
	TargetHasJob      TargetKind = "has_job"
	TargetSpecificJob TargetKind = "specific_job"
)

// Target is an event target predicate.
type Target struct {
	Kind   TargetKind `json:"type"`
	Count  int        `json:"count,omitempty"`
	JobIDs []string   `json:"job_ids,omitempty"`
}

// EventDef is a scripted or random town event.
type EventDef struct {
	ID          string
	Name        string
	Description string
	// Turn is the scheduled turn for fixed events; random events are stamped when drawn.
	Turn   int
	Target Target
	Effect Effect
	// Prizes are paid in rank order by ranked competitions.
	Prizes []int
}

// Outcome is one weighted result of an explore location.
type Outcome struct {
	Probability float64
	Description string
	Effect      Effect
}

// Location is an explore destination.
type Location struct {
	ID       string
	Name     string
	Outcomes []Outcome
}

// Achievement is an end-of-game bonus.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// ThresholdAchievement is awarded for reaching a final money threshold.
type ThresholdAchievement struct {
	Achievement
	Threshold int `json:"threshold"`
}
