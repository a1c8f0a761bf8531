package assessment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/cremis/internal/questionnaire"
)

// Classification is the tier a score falls into with its display token and guidance.
type Classification struct {
	Tier    Tier   `json:"tier"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// Band assigns its classification to scores >= Min.
type Band struct {
	Min int `json:"min"`
	Classification
}

// Ladder is an ordered table of bands with strictly descending minimums.
// The last band is the floor and also catches scores below its Min.
type Ladder []Band

// defaultLadder holds the CREMIS thresholds. It is never handed out directly.
var defaultLadder = Ladder{
	{Min: 7, Classification: Classification{
		Tier:    TierRed,
		Color:   "red",
		Message: "The situation requires rapid intervention and in-depth exploration.",
	}},
	{Min: 5, Classification: Classification{
		Tier:    TierOrange,
		Color:   "orange",
		Message: "It is necessary to explore the person's situation in more depth to better understand the risk and implement necessary interventions.",
	}},
	{Min: 3, Classification: Classification{
		Tier:    TierYellow,
		Color:   "yellow",
		Message: "Some elements seem to indicate that residential stability could be fragile. It is prudent to maintain a link with the person to see how their situation evolves in the medium term (6 months).",
	}},
	{Min: 0, Classification: Classification{
		Tier:    TierGreen,
		Color:   "green",
		Message: "This means that the person has a stable and secure residential situation, has a support network and resources, and is able to bear the costs associated with rent. It is not necessary to further explore residential instability.",
	}},
}

// Classify maps a score through the default ladder.
func Classify(score int) Classification {
	return defaultLadder.Classify(score)
}

// DefaultLadder returns a copy of the CREMIS thresholds.
func DefaultLadder() Ladder {
	return slices.Clone(defaultLadder)
}

// Classify returns the first band whose Min the score reaches.
func (l Ladder) Classify(score int) Classification {
	if len(l) == 0 {
		return Classification{}
	}
	for _, b := range l {
		if score >= b.Min {
			return b.Classification
		}
	}
	return l[len(l)-1].Classification
}

// Validate checks band order and contents.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return errors.New("ladder has no bands")
	}
	seen := make(map[Tier]bool)
	for i, b := range l {
		if !b.Tier.Valid() {
			return fmt.Errorf("band %d: invalid tier %q", i, b.Tier)
		}
		if seen[b.Tier] {
			return fmt.Errorf("band %d: duplicate tier %s", i, b.Tier)
		}
		seen[b.Tier] = true
		if b.Color == "" {
			return fmt.Errorf("band %d: color required", i)
		}
		if b.Message == "" {
			return fmt.Errorf("band %d: message required", i)
		}
		if i > 0 && b.Min >= l[i-1].Min {
			return fmt.Errorf("band %d: min %d must be below %d", i, b.Min, l[i-1].Min)
		}
	}
	return nil
}

// LadderFrom builds a ladder from questionnaire bands.
// No bands selects the default ladder.
func LadderFrom(bands []questionnaire.Band) (Ladder, error) {
	if len(bands) == 0 {
		return DefaultLadder(), nil
	}
	l := make(Ladder, 0, len(bands))
	for i, b := range bands {
		tier, err := ParseTier(b.Tier)
		if err != nil {
			return nil, fmt.Errorf("assessment.LadderFrom: band %d: %w", i, err)
		}
		l = append(l, Band{Min: b.Min, Classification: Classification{
			Tier:    tier,
			Color:   b.Color,
			Message: b.Message,
		}})
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("assessment.LadderFrom: %w", err)
	}
	return l, nil
}
