// SPDX-License-Identifier: MIT
package notes

import (
	"math"
	"testing"
)

func TestSemitoneMatchA4(t *testing.T) {
	m := SemitoneMatcher{}.Match(440.0)
	if m.Note.Name != "A" || m.Note.Octave != 4 {
		t.Fatalf("expected A4, got %s", m.Note)
	}
	// The catalog anchors on C0 = 16.35 Hz, so its A4 sits a hair below
	// 440.0 and a true 440 Hz tone reads fractionally sharp.
	if math.Abs(m.Cents) > 1.0 {
		t.Errorf("expected cents near 0, got %.4f", m.Cents)
	}
}

func TestSemitoneMatchQuarterTone(t *testing.T) {
	ref := Catalog()[ReferenceIndex].Frequency

	sharp := SemitoneMatcher{}.Match(ref * math.Pow(2, 0.25/12))
	if sharp.Note.String() != "A4" {
		t.Fatalf("expected A4, got %s", sharp.Note)
	}
	if math.Abs(sharp.Cents-25.0) > 1e-9 {
		t.Errorf("expected +25 cents, got %.6f", sharp.Cents)
	}

	flat := SemitoneMatcher{}.Match(ref * math.Pow(2, -0.25/12))
	if flat.Note.String() != "A4" {
		t.Fatalf("expected A4, got %s", flat.Note)
	}
	if math.Abs(flat.Cents+25.0) > 1e-9 {
		t.Errorf("expected -25 cents, got %.6f", flat.Cents)
	}
}

func TestSemitoneMatchCentsBounded(t *testing.T) {
	for f := 20.0; f < 8000; f *= 1.0371 {
		m := SemitoneMatcher{}.Match(f)
		if idx := IndexOf(m.Note); idx > 0 && idx < CatalogSize-1 {
			if m.Cents < -50.0-1e-9 || m.Cents > 50.0+1e-9 {
				t.Errorf("cents out of range for %.2f Hz: %.4f", f, m.Cents)
			}
		}
	}
}

func TestSemitoneMatchClampsToCatalog(t *testing.T) {
	low := SemitoneMatcher{}.Match(5.0)
	if low.Note.String() != "C0" {
		t.Errorf("expected clamp to C0, got %s", low.Note)
	}
	high := SemitoneMatcher{}.Match(30000.0)
	if high.Note.String() != "B8" {
		t.Errorf("expected clamp to B8, got %s", high.Note)
	}
}

func TestNearestMatchA4(t *testing.T) {
	m := NearestMatcher{}.Match(440.0)
	if m.Note.Name != "A" || m.Note.Octave != 4 {
		t.Fatalf("expected A4, got %s", m.Note)
	}
	if math.Abs(m.Cents) > 1.0 {
		t.Errorf("expected cents near 0, got %.4f", m.Cents)
	}
}

func TestNearestMatchExactCatalogFrequency(t *testing.T) {
	for _, n := range []int{0, 33, ReferenceIndex, CatalogSize - 1} {
		want := Catalog()[n]
		m := NearestMatcher{}.Match(want.Frequency)
		if m.Note != want {
			t.Errorf("expected %s, got %s", want, m.Note)
		}
		if math.Abs(m.Cents) > 1e-9 {
			t.Errorf("expected 0 cents at %s, got %.6f", want, m.Cents)
		}
	}
}

func TestStrategiesAgreeOnCatalogTones(t *testing.T) {
	semitone := SemitoneMatcher{}
	nearest := NearestMatcher{}
	for _, n := range Catalog() {
		a := semitone.Match(n.Frequency)
		b := nearest.Match(n.Frequency)
		if a.Note != b.Note {
			t.Errorf("strategies disagree at %s: semitone=%s nearest=%s", n, a.Note, b.Note)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    Matcher
		wantErr bool
	}{
		{"semitone", SemitoneMatcher{}, false},
		{"SEMITONE", SemitoneMatcher{}, false},
		{"", SemitoneMatcher{}, false},
		{"nearest", NearestMatcher{}, false},
		{"Nearest", NearestMatcher{}, false},
		{"closest", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStrategy(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %T, expected %T", tt.name, got, tt.want)
			}
		})
	}
}

func BenchmarkSemitoneMatch(b *testing.B) {
	m := SemitoneMatcher{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Match(329.63)
	}
}

func BenchmarkNearestMatch(b *testing.B) {
	m := NearestMatcher{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Match(329.63)
	}
}
