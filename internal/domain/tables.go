package domain

// Unique achievement ids.
const (
	AchievementFirstTo100k    = "first_to_100k"
	AchievementRichest        = "richest"
	AchievementFirstJob       = "first_job"
	AchievementFirstPromotion = "first_promotion"
	AchievementMostJobChanges = "most_job_changes"
	AchievementLateBloomer    = "late_bloomer"
	AchievementNeverWorked    = "never_worked"
)

// AchievementTable configures end-of-game bonuses.
type AchievementTable struct {
	// Thresholds are ordered from the highest threshold down.
	Thresholds []ThresholdAchievement
	Unique     []Achievement
	DreamName  string
}

// UniqueByID looks up a unique achievement.
func (t AchievementTable) UniqueByID(id string) (Achievement, bool) {
	for _, a := range t.Unique {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Tables is the read-only content the engine plays with.
type Tables struct {
	Cards        []CardDef
	Jobs         []Job
	Characters   []Character
	FixedEvents  []EventDef
	RandomEvents []EventDef
	Locations    []Location
	Achievements AchievementTable
}

// Job returns the job with the given id.
func (t *Tables) Job(id string) (*Job, bool) {
	for i := range t.Jobs {
		if t.Jobs[i].ID == id {
			return &t.Jobs[i], true
		}
	}
	return nil, false
}

// Character returns the character with the given id.
func (t *Tables) Character(id string) (*Character, bool) {
	for i := range t.Characters {
		if t.Characters[i].ID == id {
			return &t.Characters[i], true
		}
	}
	return nil, false
}

// Location returns the explore location with the given id.
func (t *Tables) Location(id string) (*Location, bool) {
	for i := range t.Locations {
		if t.Locations[i].ID == id {
			return &t.Locations[i], true
		}
	}
	return nil, false
}

// CardDef returns the card definition with the given id.
func (t *Tables) CardDef(id string) (*CardDef, bool) {
	for i := range t.Cards {
		if t.Cards[i].ID == id {
			return &t.Cards[i], true
		}
	}
	return nil, false
}

// FixedEvent returns the event scheduled for turn, if any.
func (t *Tables) FixedEvent(turn int) (*EventDef, bool) {
	for i := range t.FixedEvents {
		if t.FixedEvents[i].Turn == turn {
			return &t.FixedEvents[i], true
		}
	}
	return nil, false
}

// PlayerJob resolves the job of p, or nil while unemployed or when the id is unknown.
func (t *Tables) PlayerJob(p Player) *Job {
	if !p.Employed() {
		return nil
	}
	job, _ := t.Job(p.JobID)
	return job
}
