package engine

import "time"

const (
	// NaturalGrowthDays is how many days must pass before the companion
	// grows a level on its own.
	NaturalGrowthDays = 5

	// traitDriftStep is how far one interaction nudges a trait scalar.
	traitDriftStep = 0.05
)

// CompanionGrowthEvent is one append-only entry in Yu's growth history.
type CompanionGrowthEvent struct {
	ID        string
	Kind      string // "natural" or the interaction kind
	NewLevel  int
	CreatedAt time.Time
}

// CompanionProgression is the "Yu" track. Its level only moves upward and
// never leads the player: growth is gated on the player already being at
// or above the companion's prospective new level.
type CompanionProgression struct {
	UID   string
	Level int

	// Traits are bounded personality scalars in [0,1] that drift with
	// interactions.
	Traits map[string]float64

	// LastNaturalGrowth anchors the elapsed-days check.
	LastNaturalGrowth time.Time

	History []CompanionGrowthEvent
}

// NewCompanionProgression returns a level-1 companion with neutral traits.
func NewCompanionProgression(uid string, now time.Time) *CompanionProgression {
	return &CompanionProgression{
		UID:   uid,
		Level: 1,
		Traits: map[string]float64{
			"warmth":      0.5,
			"playfulness": 0.5,
			"wisdom":      0.5,
		},
		LastNaturalGrowth: now.UTC(),
	}
}

// canGrow is the shared gate: the prospective new level must not exceed
// the player's level.
func (c *CompanionProgression) canGrow(playerLevel int) bool {
	return playerLevel >= c.Level+1
}

// GrowNaturally grows the companion by exactly one level once daysPassed
// reaches the threshold and the player-level gate passes. A failed gate is
// an idempotent no-op, never an error.
func (c *CompanionProgression) GrowNaturally(playerLevel, daysPassed int, now time.Time) bool {
	if daysPassed < NaturalGrowthDays || !c.canGrow(playerLevel) {
		return false
	}
	c.Level++
	c.LastNaturalGrowth = now.UTC()
	c.History = append(c.History, CompanionGrowthEvent{
		Kind:      "natural",
		NewLevel:  c.Level,
		CreatedAt: now.UTC(),
	})
	return true
}

// GrowFromInteraction grows the companion by one level for an allow-listed
// interaction, under the same player-level gate, and drifts the matching
// personality trait. Unknown kinds are rejected.
func (c *CompanionProgression) GrowFromInteraction(kind InteractionKind, playerLevel int, now time.Time) (bool, error) {
	if !kind.IsValid() {
		return false, validationErrorf(ReasonInvalidInteraction, "unknown interaction kind %q", kind)
	}

	c.driftTrait(kind)
	if !c.canGrow(playerLevel) {
		return false, nil
	}
	c.Level++
	c.History = append(c.History, CompanionGrowthEvent{
		Kind:      string(kind),
		NewLevel:  c.Level,
		CreatedAt: now.UTC(),
	})
	return true, nil
}

func (c *CompanionProgression) driftTrait(kind InteractionKind) {
	if c.Traits == nil {
		c.Traits = map[string]float64{}
	}
	var trait string
	switch kind {
	case InteractionEmotionalSupport:
		trait = "warmth"
	case InteractionStoryChoice, InteractionCrystalResonance:
		trait = "playfulness"
	default:
		trait = "wisdom"
	}
	v := c.Traits[trait] + traitDriftStep
	if v > 1 {
		v = 1
	}
	c.Traits[trait] = v
}
