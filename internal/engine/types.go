package engine

// TaskCategory classifies a unit of work.
type TaskCategory string

const (
	CategoryRoutine TaskCategory = "routine"
	CategoryOneShot TaskCategory = "one_shot"
	CategorySkillUp TaskCategory = "skill_up"
	CategorySocial  TaskCategory = "social"
)

func (c TaskCategory) IsValid() bool {
	switch c {
	case CategoryRoutine, CategoryOneShot, CategorySkillUp, CategorySocial:
		return true
	default:
		return false
	}
}

type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyEpic
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// TaskStatus is the one-way task lifecycle: pending -> in_progress -> completed.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// CrystalAttribute is a growth-category tag attached to tasks and quests.
// Consumed by the progression-visualization layer; opaque to the engine.
type CrystalAttribute string

const (
	CrystalSelfDiscipline CrystalAttribute = "self_discipline"
	CrystalEmpathy        CrystalAttribute = "empathy"
	CrystalResilience     CrystalAttribute = "resilience"
	CrystalCuriosity      CrystalAttribute = "curiosity"
	CrystalCommunication  CrystalAttribute = "communication"
	CrystalCreativity     CrystalAttribute = "creativity"
	CrystalCourage        CrystalAttribute = "courage"
	CrystalWisdom         CrystalAttribute = "wisdom"
)

func (a CrystalAttribute) IsValid() bool {
	switch a {
	case CrystalSelfDiscipline, CrystalEmpathy, CrystalResilience, CrystalCuriosity,
		CrystalCommunication, CrystalCreativity, CrystalCourage, CrystalWisdom:
		return true
	default:
		return false
	}
}

// InteractionKind is the allow-list of companion interactions that can
// trigger growth.
type InteractionKind string

const (
	InteractionStoryChoice      InteractionKind = "story_choice"
	InteractionTaskCompletion   InteractionKind = "task_completion"
	InteractionCrystalResonance InteractionKind = "crystal_resonance"
	InteractionEmotionalSupport InteractionKind = "emotional_support"
)

func (k InteractionKind) IsValid() bool {
	switch k {
	case InteractionStoryChoice, InteractionTaskCompletion,
		InteractionCrystalResonance, InteractionEmotionalSupport:
		return true
	default:
		return false
	}
}
