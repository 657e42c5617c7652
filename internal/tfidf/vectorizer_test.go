package tfidf

import (
	"math"
	"testing"
)

func TestFitTransformVocabularyBounds(t *testing.T) {
	t.Parallel()

	docs := []string{
		"pay pay culture",
		"pay manager",
		"pay manager culture",
	}

	// "pay" appears in all 3 docs; max_df 0.7 caps df at 2 and drops it.
	v := NewVectorizer(Config{MaxDF: 0.7, MinDF: 2})
	m, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform returned error: %v", err)
	}

	vocab := v.Vocabulary()
	if len(vocab) != 2 || vocab[0] != "culture" || vocab[1] != "manager" {
		t.Fatalf("unexpected vocabulary: %v", vocab)
	}

	rows, cols := m.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("unexpected matrix shape: %dx%d", rows, cols)
	}
}

func TestFitTransformMaxFeatures(t *testing.T) {
	t.Parallel()

	docs := []string{
		"alpha alpha alpha beta",
		"alpha beta gamma",
	}

	v := NewVectorizer(Config{MaxFeatures: 2, MinDF: 1})
	if _, err := v.FitTransform(docs); err != nil {
		t.Fatalf("FitTransform returned error: %v", err)
	}

	// alpha (4 occurrences) and beta (2) beat gamma (1); order stays lexicographic.
	vocab := v.Vocabulary()
	if len(vocab) != 2 || vocab[0] != "alpha" || vocab[1] != "beta" {
		t.Fatalf("unexpected vocabulary after cap: %v", vocab)
	}
}

func TestFitTransformStopWords(t *testing.T) {
	t.Parallel()

	docs := []string{"great pay", "great culture"}

	v := NewVectorizer(Config{MinDF: 1, StopWords: []string{"great"}})
	if _, err := v.FitTransform(docs); err != nil {
		t.Fatalf("FitTransform returned error: %v", err)
	}

	if _, ok := v.TermIndex("great"); ok {
		t.Fatalf("stopword survived filtering: %v", v.Vocabulary())
	}
}

func TestFitTransformEmptyVocabulary(t *testing.T) {
	t.Parallel()

	docs := []string{"one two", "three four"}

	// Every term has df=1; require df >= 5 so nothing survives.
	v := NewVectorizer(Config{MinDF: 5})
	if _, err := v.FitTransform(docs); err == nil {
		t.Fatal("expected error for empty vocabulary, got nil")
	}
}

func TestReverseLookupMatchesColumns(t *testing.T) {
	t.Parallel()

	docs := []string{"salary bonus", "salary office"}

	v := NewVectorizer(Config{MinDF: 1})
	if _, err := v.FitTransform(docs); err != nil {
		t.Fatalf("FitTransform returned error: %v", err)
	}

	for col, term := range v.Vocabulary() {
		idx, ok := v.TermIndex(term)
		if !ok || idx != col {
			t.Fatalf("lookup for %q returned (%d,%v), want column %d", term, idx, ok, col)
		}
	}
}

func TestRowsAreUnitLength(t *testing.T) {
	t.Parallel()

	docs := []string{"salary bonus office", "salary office", "bonus"}

	v := NewVectorizer(Config{MinDF: 1})
	m, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform returned error: %v", err)
	}

	rows, cols := m.Dims()
	for r := 0; r < rows; r++ {
		var ss float64
		for c := 0; c < cols; c++ {
			ss += m.At(r, c) * m.At(r, c)
		}
		if math.Abs(ss-1) > 1e-9 {
			t.Fatalf("row %d has squared norm %f, want 1", r, ss)
		}
	}
}
