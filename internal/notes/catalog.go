// SPDX-License-Identifier: MIT

// Package notes holds the equal-tempered note table and the policies that
// map a detected frequency onto it.
package notes

import (
	"fmt"
	"math"
	"sync"
)

// pitchClasses lists the twelve chromatic names in semitone order within
// one octave.
var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const (
	// baseFrequency is C0 in hertz under A440 equal temperament.
	baseFrequency = 16.35

	octaves   = 9
	semitones = 12

	// CatalogSize is the number of notes spanned by octaves 0-8.
	CatalogSize = octaves * semitones

	// ReferenceIndex is the catalog position of A4 (~440 Hz), the anchor
	// used by semitone-based matching.
	ReferenceIndex = 57
)

// Note is one entry of the catalog. Immutable value.
type Note struct {
	Name      string  `json:"name"`   // pitch class, e.g. "A#"
	Octave    int     `json:"octave"`
	Frequency float64 `json:"frequency"` // Hz
}

// String returns the note in scientific pitch notation, e.g. "A4".
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

var (
	buildOnce sync.Once
	catalog   []Note
)

// Catalog returns the 108-note equal-tempered table, octaves 0 through 8,
// strictly ascending by frequency. The table is built once and shared for
// the process lifetime; callers must treat it as read-only.
func Catalog() []Note {
	buildOnce.Do(func() {
		catalog = make([]Note, 0, CatalogSize)
		for octave := 0; octave < octaves; octave++ {
			for i := 0; i < semitones; i++ {
				catalog = append(catalog, Note{
					Name:      pitchClasses[i],
					Octave:    octave,
					Frequency: baseFrequency * math.Pow(2, float64(octave)+float64(i)/12),
				})
			}
		}
	})
	return catalog
}

// IndexOf returns the catalog position of a note, or -1 when the note is
// not a catalog entry.
func IndexOf(n Note) int {
	if n.Octave < 0 || n.Octave >= octaves {
		return -1
	}
	for i, name := range pitchClasses {
		if name == n.Name {
			return n.Octave*semitones + i
		}
	}
	return -1
}
