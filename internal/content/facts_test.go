package content

import (
	"math/rand"
	"testing"
)

func TestNewFactsDedupes(t *testing.T) {
	catalog := []string{"a", "b", "a", "c", "b"}
	facts := NewFacts(catalog, rand.New(rand.NewSource(1)))

	if facts.Len() != 3 {
		t.Fatalf("expected 3 unique facts, got %d", facts.Len())
	}
	seen := map[string]bool{}
	for _, f := range facts.All() {
		if seen[f] {
			t.Fatalf("duplicate %q survived dedup", f)
		}
		seen[f] = true
	}
}

func TestNewFactsShuffleIsSeeded(t *testing.T) {
	catalog := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	first := NewFacts(catalog, rand.New(rand.NewSource(42))).All()
	second := NewFacts(catalog, rand.New(rand.NewSource(42))).All()

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed should give same order: %v vs %v", first, second)
		}
	}
}

func TestDefaultCatalogHasContent(t *testing.T) {
	facts := NewFacts(DefaultCatalog, rand.New(rand.NewSource(7)))
	if facts.Len() < 40 {
		t.Fatalf("default catalog unexpectedly small: %d", facts.Len())
	}
	// Catalog carries one repeated entry; dedup must remove it.
	if facts.Len() >= len(DefaultCatalog) {
		t.Fatalf("dedup removed nothing: %d of %d", facts.Len(), len(DefaultCatalog))
	}
}
