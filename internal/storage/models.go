package storage

import "time"

type Player struct {
	UID     string
	XPTotal int
	Level   int
}

type Companion struct {
	UID               string
	Level             int
	Traits            map[string]float64
	LastNaturalGrowth time.Time
}

type Task struct {
	ID          int64
	UID         string
	Title       string
	Category    string
	Difficulty  int
	Priority    string
	Status      string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	EstimatedMinutes *int64
	ActualMinutes    *int64

	BaseXP   int
	EarnedXP int

	// Attributes are crystal growth tags, stored as a JSON array.
	Attributes []string
}

type XPEvent struct {
	ID        string
	UID       string
	Amount    int
	Reason    string
	CreatedAt time.Time
}

type SystemEvent struct {
	ID        string
	UID       string
	Message   string
	CreatedAt time.Time
}
