package domain

// MeetsRequirements reports whether every required stat is reached.
func MeetsRequirements(s Stats, req Requirements) bool {
	for stat, need := range req {
		if s.Get(stat) < need {
			return false
		}
	}
	return true
}

// EligibleJobs lists jobs whose entry level the player qualifies for, in table order.
func EligibleJobs(p Player, jobs []Job) []Job {
	var out []Job
	for _, job := range jobs {
		if len(job.Levels) == 0 {
			continue
		}
		if MeetsRequirements(p.Stats, job.Levels[0].RequiredStats) {
			out = append(out, job)
		}
	}
	return out
}

// ApplyForJob hires an unemployed, qualified player at level 0.
func ApplyForJob(p Player, job *Job, turn int) (Player, error) {
	if job == nil || len(job.Levels) == 0 {
		return p, Integrity("unknown job")
	}
	if p.Employed() {
		return p, Illegal("already employed")
	}
	if !MeetsRequirements(p.Stats, job.Levels[0].RequiredStats) {
		return p, Illegal("requirements for %s not met", job.Name)
	}
	return Hire(p, job, turn), nil
}

// Hire places the player in job at level 0 without checking requirements.
func Hire(p Player, job *Job, turn int) Player {
	p.JobID = job.ID
	p.JobLevel = 0
	p.Performance = 0
	if p.FirstJobTurn == nil {
		t := turn
		p.FirstJobTurn = &t
	}
	p.JobChangeCount++
	return p
}

// QuitJob clears the job and resets level and performance.
func QuitJob(p Player) Player {
	p.JobID = ""
	p.JobLevel = 0
	p.Performance = 0
	return p
}

// CanPromote reports whether the player may move up one level.
func CanPromote(p Player, job *Job) bool {
	if job == nil || !p.Employed() || p.JobID != job.ID {
		return false
	}
	next := p.JobLevel + 1
	if next > TopJobLevel || next >= len(job.Levels) {
		return false
	}
	if p.Performance < next*PromotionStep {
		return false
	}
	return MeetsRequirements(p.Stats, job.Levels[next].RequiredStats)
}

// Promote moves the player up one level and stamps the first promotion turn.
func Promote(p Player, job *Job, turn int) (Player, error) {
	if !CanPromote(p, job) {
		return p, Illegal("promotion requirements not met")
	}
	p.JobLevel++
	if p.FirstPromotionTurn == nil {
		t := turn
		p.FirstPromotionTurn = &t
	}
	return p, nil
}

// Salary returns the pay for the player's level and relative performance.
func Salary(p Player, job *Job) int {
	if job == nil || !p.Employed() || p.JobLevel < 0 || p.JobLevel >= len(job.Levels) {
		return 0
	}
	pay := job.Levels[p.JobLevel].Salary
	if len(pay) == 0 {
		return 0
	}
	rel := min(max(p.Performance-p.JobLevel*PromotionStep, 0), len(pay)-1)
	return pay[rel]
}

// PaySalary credits the salary and returns the amount paid.
func PaySalary(p Player, job *Job) (Player, int) {
	amount := Salary(p, job)
	if amount == 0 {
		return p, 0
	}
	return ChangeMoney(p, amount), amount
}

// ApplyJobSkill applies the job's passive per-turn stat increment.
func ApplyJobSkill(p Player, job *Job) (Player, StatType) {
	if job == nil || !p.Employed() || job.Skill == "" {
		return p, ""
	}
	return ChangeStat(p, job.Skill, 1), job.Skill
}

// StartingSalary is the first salary tier of the entry level.
func StartingSalary(job Job) int {
	if len(job.Levels) == 0 || len(job.Levels[0].Salary) == 0 {
		return 0
	}
	return job.Levels[0].Salary[0]
}
