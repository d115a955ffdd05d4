// Package tabular implements the CSV import primitives: field separator
// detection, RFC4180-like row parsing for arbitrary separators, per-cell
// language detection and heuristic column classification.
package tabular

import "strings"

// Separator candidates in preference order. Pipe sits late in the list since
// it doubles as the answer-variant separator inside front/back fields; a tie
// against an earlier candidate therefore never resolves to it.
var separatorCandidates = []rune{',', ';', '\t', '|', ':', '/', '\\'}

// DefaultSeparator is returned when no candidate produces a clear winner.
const DefaultSeparator = ','

const (
	separatorSampleLines = 10
	minUsefulFields      = 2
	maxUsefulFields      = 4
)

// DetectSeparator guesses the field separator from up to ten non-empty
// leading lines. A candidate scores one point per line it splits into two to
// four fields; the highest score wins and comma is the fallback. Deliberately
// cheap and sample-based, no full-file scan.
func DetectSeparator(content string) rune {
	var sample []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == separatorSampleLines {
			break
		}
	}

	best := DefaultSeparator
	bestScore := 0
	for _, sep := range separatorCandidates {
		score := 0
		for _, line := range sample {
			n := len(ParseLine(line, sep))
			if n >= minUsefulFields && n <= maxUsefulFields {
				score++
			}
		}
		if score > bestScore {
			best = sep
			bestScore = score
		}
	}
	return best
}
