// SPDX-License-Identifier: MIT
package notes

import (
	"fmt"
	"math"
	"strings"
)

// Match pairs a catalog note with the cents deviation of a measured
// frequency from that note. 100 cents is one semitone.
type Match struct {
	Note  Note    `json:"note"`
	Cents float64 `json:"cents"`
}

// Matcher converts a detected fundamental into the closest catalog note.
// Frequency must be positive; callers must not invoke Match when no pitch
// was detected.
type Matcher interface {
	Match(frequency float64) Match
}

// SemitoneMatcher rounds the semitone distance from the A4 reference to
// pick a note. O(1), and bounds cents to roughly [-50, 50]. This is the
// canonical strategy.
type SemitoneMatcher struct{}

func (SemitoneMatcher) Match(frequency float64) Match {
	table := Catalog()
	s := 12 * math.Log2(frequency/table[ReferenceIndex].Frequency)
	rounded := math.Round(s)

	index := ReferenceIndex + int(rounded)
	if index < 0 {
		index = 0
	}
	if index > len(table)-1 {
		index = len(table) - 1
	}

	return Match{Note: table[index], Cents: 100 * (s - rounded)}
}

// NearestMatcher scans the catalog for the minimal absolute frequency
// distance. An earlier revision of the tuner shipped this strategy; it is
// kept selectable for comparison against SemitoneMatcher.
type NearestMatcher struct{}

func (NearestMatcher) Match(frequency float64) Match {
	table := Catalog()
	best := 0
	bestDist := math.Abs(frequency - table[0].Frequency)
	for i := 1; i < len(table); i++ {
		if d := math.Abs(frequency - table[i].Frequency); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return Match{
		Note:  table[best],
		Cents: 1200 * math.Log2(frequency/table[best].Frequency),
	}
}

// ParseStrategy converts a strategy name (case-insensitive) to a Matcher.
// The empty string selects the canonical semitone strategy.
func ParseStrategy(name string) (Matcher, error) {
	switch strings.ToLower(name) {
	case "", "semitone":
		return SemitoneMatcher{}, nil
	case "nearest":
		return NearestMatcher{}, nil
	default:
		return SemitoneMatcher{}, fmt.Errorf("unknown match strategy: %q", name)
	}
}
