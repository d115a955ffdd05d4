package tabular

import (
	"math"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/madpixels/lingocards/internal/entity"
)

// ColumnKind is the semantic label assigned to a CSV column.
type ColumnKind string

const (
	ColumnFrontText   ColumnKind = "front_text"
	ColumnBackText    ColumnKind = "back_text"
	ColumnHint        ColumnKind = "hint"
	ColumnDescription ColumnKind = "description"
	ColumnUnknown     ColumnKind = "unknown"
)

// ClassificationSampleSize bounds how many parsed data rows feed the
// classifier. More rows sharpen the statistics but the heuristics stabilise
// well before this.
const ClassificationSampleSize = 30

// meaningfulColumns is the widest column set the format assigns semantics to.
const meaningfulColumns = 4

// HasHeader applies the header heuristic: the first line is treated as a
// heading when its lowercased text mentions "front" or "text".
func HasHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "front") || strings.Contains(lower, "text")
}

// FallbackLabels returns the positional default assignment used in
// best-effort mode when classification cannot find the required columns.
func FallbackLabels(n int) []ColumnKind {
	defaults := []ColumnKind{ColumnFrontText, ColumnBackText, ColumnHint, ColumnDescription}
	labels := make([]ColumnKind, n)
	for i := range labels {
		if i < len(defaults) {
			labels[i] = defaults[i]
		} else {
			labels[i] = ColumnDescription
		}
	}
	return labels
}

// ClassifyColumns assigns one semantic label per column from a sample of
// parsed rows. The strategy is heuristic scoring: the best-scoring column
// pair becomes (front_text, back_text), the rest are settled by hint versus
// description likelihood. Callers must verify that both required labels are
// present; ClassifyColumns itself never fails.
func ClassifyColumns(rows [][]string) []ColumnKind {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil
	}

	labels := make([]ColumnKind, width)
	for i := range labels {
		labels[i] = ColumnUnknown
	}
	if width < 2 {
		return labels
	}

	stats := make([]columnStats, width)
	for col := 0; col < width; col++ {
		stats[col] = collectStats(rows, col)
	}

	front, back, ok := bestTranslationPair(stats)
	if !ok {
		return labels
	}
	labels[front] = ColumnFrontText
	labels[back] = ColumnBackText

	for col := 0; col < width; col++ {
		if labels[col] != ColumnUnknown {
			continue
		}
		labels[col] = classifyExtra(stats[col], col)
	}
	return labels
}

// bestTranslationPair searches all column pairs for the most likely
// (front, back) combination. The lower index becomes the front side.
func bestTranslationPair(stats []columnStats) (front, back int, ok bool) {
	best := math.Inf(-1)
	for i := 0; i < len(stats); i++ {
		for j := i + 1; j < len(stats); j++ {
			score := pairScore(stats[i], stats[j])
			if score > best {
				best = score
				front, back = i, j
			}
		}
	}
	return front, back, best > math.Inf(-1)
}

// pairScore combines cross-column similarity with each column's individual
// translation-likeness, minus penalties for traits no vocabulary column
// should have.
func pairScore(a, b columnStats) float64 {
	score := translationLikeness(a) + translationLikeness(b)

	// Similar average lengths and uniqueness ratios suggest two renditions
	// of the same entries.
	if lengthsComparable(a.avgLen, b.avgLen) {
		score += 1.5
	}
	if math.Abs(a.uniqueRatio-b.uniqueRatio) < 0.2 {
		score += 1
	}
	if a.consistentWordCount() && b.consistentWordCount() {
		score += 1
	}

	// A differing, recognised language on each side is the strongest
	// signal a pair is (front, back).
	if a.language != b.language && a.language.Known() && b.language.Known() {
		score += 3
	}

	if a.hasURL || b.hasURL {
		score -= 6
	}
	score -= 2 * (a.multilineRatio + b.multilineRatio)
	score -= 2 * (a.emptyRatio + b.emptyRatio)
	if d := math.Abs(a.lenStdDev - b.lenStdDev); d > 15 {
		score -= 1.5
	}
	return score
}

func translationLikeness(s columnStats) float64 {
	var score float64
	if s.uniqueRatio > 0.9 {
		score++
	}
	if s.avgLen > 0 && s.avgLen < 30 {
		score++
	}
	if s.consistentWordCount() {
		score++
	}
	if s.specialRatio < 0.05 {
		score++
	}
	return score
}

// classifyExtra labels a leftover column as hint or description. Ties and
// no-signal columns stay unknown within the meaningful column range; columns
// beyond it are folded into description outright, whatever their shape.
func classifyExtra(s columnStats, col int) ColumnKind {
	if col >= meaningfulColumns {
		return ColumnDescription
	}

	var hint, desc float64

	if s.avgLen > 0 && s.avgLen < 30 {
		hint += 1.5
	}
	if s.repeatRatio > 0.3 {
		hint++
	}
	if s.avgWords > 0 && s.avgWords <= 2 {
		hint++
	}

	if s.avgLen > 30 {
		desc += 1.5
	}
	if s.uniqueRatio > 0.8 {
		desc++
	}
	if s.punctRatio > 0.3 {
		desc++
	}

	switch {
	case hint > desc:
		return ColumnHint
	case desc > hint:
		return ColumnDescription
	default:
		return ColumnUnknown
	}
}

func lengthsComparable(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	return math.Min(a, b)/math.Max(a, b) > 0.4
}

// columnStats aggregates the per-column features the heuristics score on.
type columnStats struct {
	avgLen         float64
	lenStdDev      float64
	uniqueRatio    float64
	avgWords       float64
	maxWords       int
	emptyRatio     float64
	multilineRatio float64
	specialRatio   float64
	repeatRatio    float64
	punctRatio     float64
	hasURL         bool
	language       entity.Language
}

func (s columnStats) consistentWordCount() bool {
	return s.maxWords > 0 && float64(s.maxWords)-s.avgWords <= 1.5
}

func collectStats(rows [][]string, col int) columnStats {
	var s columnStats
	if len(rows) == 0 {
		return s
	}

	values := make([]string, 0, len(rows))
	var nonEmpty []string
	var lengths []float64
	var totalWords, totalRunes, specialRunes int
	var multiline, punctuated, empty int

	for _, row := range rows {
		var cell string
		if col < len(row) {
			cell = strings.TrimSpace(row[col])
		}
		values = append(values, strings.ToLower(cell))

		if cell == "" {
			empty++
			continue
		}
		nonEmpty = append(nonEmpty, strings.ToLower(cell))
		lengths = append(lengths, float64(len([]rune(cell))))

		words := len(strings.Fields(cell))
		totalWords += words
		if words > s.maxWords {
			s.maxWords = words
		}
		if strings.ContainsAny(cell, "\n\r") {
			multiline++
		}
		if strings.ContainsAny(cell, ".,!?;:") {
			punctuated++
		}
		lower := strings.ToLower(cell)
		if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") || strings.Contains(lower, "www.") {
			s.hasURL = true
		}
		for _, r := range cell {
			totalRunes++
			if !unicode.IsLetter(r) && !unicode.IsSpace(r) && !unicode.IsPunct(r) {
				specialRunes++
			}
		}
	}

	total := float64(len(rows))
	s.emptyRatio = float64(empty) / total

	if len(nonEmpty) == 0 {
		return s
	}
	n := float64(len(nonEmpty))

	var sum float64
	for _, l := range lengths {
		sum += l
	}
	s.avgLen = sum / n
	var variance float64
	for _, l := range lengths {
		variance += (l - s.avgLen) * (l - s.avgLen)
	}
	s.lenStdDev = math.Sqrt(variance / n)

	s.avgWords = float64(totalWords) / n
	s.multilineRatio = float64(multiline) / n
	s.punctRatio = float64(punctuated) / n
	if totalRunes > 0 {
		s.specialRatio = float64(specialRunes) / float64(totalRunes)
	}

	s.uniqueRatio = float64(len(lo.Uniq(nonEmpty))) / n
	top := lo.MaxBy(lo.Entries(lo.CountValues(nonEmpty)), func(a, b lo.Entry[string, int]) bool {
		return a.Value > b.Value
	})
	if top.Value > 1 {
		s.repeatRatio = float64(top.Value) / n
	}

	s.language = DetectLanguage(strings.Join(nonEmpty, " "))
	return s
}
