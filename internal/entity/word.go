package entity

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// VariantSeparator splits alternate acceptable answers inside front or back
// text. It is reserved syntax and never acts as a CSV delimiter on these
// fields.
const VariantSeparator = "|"

// Weight bounds. A word starts in the middle of the range; failures pull it
// down (sampled more often), successes push it up. The exact step sizes are a
// tuning decision, the direction and clamping are contractual.
const (
	WeightFloor   = 0
	WeightCeiling = 1000
	WeightInitial = 500

	weightSuccessStep = 40
	weightFailStep    = 80
)

// Word is a single flashcard. Dictionary holds the owning dictionary's string
// key, not its numeric id.
type Word struct {
	ID          int64     `db:"id"`
	Dictionary  string    `db:"dictionary"`
	FrontText   string    `db:"front_text"`
	BackText    string    `db:"back_text"`
	Hint        string    `db:"hint"`
	Description string    `db:"description"`
	Success     int       `db:"success"`
	Fail        int       `db:"fail"`
	Weight      int       `db:"weight"`
	Author      string    `db:"author"`
	CreatedAt   time.Time `db:"created_at"`
}

// Validate checks the invariants that must hold before persistence.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.FrontText) == "" || strings.TrimSpace(w.BackText) == "" {
		return ErrEmptyWordText
	}
	if strings.TrimSpace(w.Dictionary) == "" {
		return ErrEmptyDictionaryKey
	}
	return nil
}

// Normalize fills defaults before persistence.
func (w *Word) Normalize(now time.Time) {
	w.FrontText = strings.TrimSpace(w.FrontText)
	w.BackText = strings.TrimSpace(w.BackText)
	w.Hint = strings.TrimSpace(w.Hint)
	w.Description = strings.TrimSpace(w.Description)
	if w.Weight == 0 && w.Success == 0 && w.Fail == 0 {
		w.Weight = WeightInitial
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
}

// RecordAnswer registers the outcome of one study attempt and recomputes the
// weight. This is the only mutation path for Weight.
func (w *Word) RecordAnswer(wasCorrect bool) {
	if wasCorrect {
		w.Success++
	} else {
		w.Fail++
	}
	w.Weight = computeWeight(w.Success, w.Fail)
}

// computeWeight derives the sampling weight from the answer counters. It is
// monotonic: more successes never lower the weight, more failures never raise
// it. Clamped so sampling stays well-behaved at the extremes.
func computeWeight(success, fail int) int {
	weight := WeightInitial + success*weightSuccessStep - fail*weightFailStep
	if weight < WeightFloor {
		return WeightFloor
	}
	if weight > WeightCeiling {
		return WeightCeiling
	}
	return weight
}

// Variants splits a front or back field into its set of acceptable answer
// variants, trimmed and lowercased.
func Variants(text string) []string {
	parts := strings.Split(text, VariantSeparator)
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.ToLower(strings.TrimSpace(p)); v != "" {
			variants = append(variants, v)
		}
	}
	return lo.Uniq(variants)
}

// AnswerMatches reports whether a given answer is acceptable for an expected
// field. Both sides are treated as variant sets; the answer is correct when
// the sets intersect.
func AnswerMatches(expected, given string) bool {
	return len(lo.Intersect(Variants(expected), Variants(given))) > 0
}
