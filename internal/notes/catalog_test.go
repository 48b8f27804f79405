// SPDX-License-Identifier: MIT
package notes

import (
	"math"
	"testing"
)

func TestCatalogSize(t *testing.T) {
	table := Catalog()
	if len(table) != CatalogSize {
		t.Fatalf("catalog has %d notes, expected %d", len(table), CatalogSize)
	}
}

func TestCatalogStrictlyAscending(t *testing.T) {
	table := Catalog()
	for i := 0; i < len(table)-1; i++ {
		if table[i].Frequency >= table[i+1].Frequency {
			t.Errorf("catalog not strictly ascending at %d: %s %.4f Hz >= %s %.4f Hz",
				i, table[i], table[i].Frequency, table[i+1], table[i+1].Frequency)
		}
	}
}

func TestCatalogReferenceNote(t *testing.T) {
	ref := Catalog()[ReferenceIndex]
	if ref.Name != "A" || ref.Octave != 4 {
		t.Errorf("reference note is %s, expected A4", ref)
	}
	if math.Abs(ref.Frequency-440.0) > 0.1 {
		t.Errorf("reference frequency %.4f Hz, expected 440.0 ± 0.1", ref.Frequency)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	table := Catalog()
	if got := table[0].String(); got != "C0" {
		t.Errorf("first note %s, expected C0", got)
	}
	if got := table[len(table)-1].String(); got != "B8" {
		t.Errorf("last note %s, expected B8", got)
	}
	if math.Abs(table[0].Frequency-16.35) > 1e-9 {
		t.Errorf("C0 frequency %.4f Hz, expected 16.35", table[0].Frequency)
	}
}

func TestCatalogIsCached(t *testing.T) {
	a := Catalog()
	b := Catalog()
	if &a[0] != &b[0] {
		t.Error("Catalog built more than once")
	}
}

func TestIndexOf(t *testing.T) {
	table := Catalog()
	for i, n := range table {
		if got := IndexOf(n); got != i {
			t.Errorf("IndexOf(%s) = %d, expected %d", n, got, i)
		}
	}
	if got := IndexOf(Note{Name: "H", Octave: 2}); got != -1 {
		t.Errorf("IndexOf(H2) = %d, expected -1", got)
	}
	if got := IndexOf(Note{Name: "A", Octave: 9}); got != -1 {
		t.Errorf("IndexOf(A9) = %d, expected -1", got)
	}
}
