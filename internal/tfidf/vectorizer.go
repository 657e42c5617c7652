// Package tfidf turns a corpus of lemmatized documents into a dense TF-IDF
// weighted term-document matrix with a bounded, stably ordered vocabulary.
package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

// Config bounds which terms make it into the vocabulary.
type Config struct {
	// MaxFeatures caps the vocabulary size; the highest total-count terms win.
	// Zero or negative means unlimited.
	MaxFeatures int
	// MaxDF drops terms present in more than this fraction of documents.
	MaxDF float64
	// MinDF drops terms present in fewer than this many documents.
	MinDF int
	// StopWords are excluded before counting.
	StopWords []string
}

// Vectorizer fits a bounded vocabulary and produces document-row TF-IDF
// weights. The fitted vocabulary order is stable and defines the column
// indexing of every downstream matrix.
type Vectorizer struct {
	cfg    Config
	vocab  []string
	lookup map[string]int
}

// NewVectorizer builds an unfitted vectorizer.
func NewVectorizer(cfg Config) *Vectorizer {
	return &Vectorizer{cfg: cfg}
}

// FitTransform counts terms across docs, selects the vocabulary within the
// configured frequency bounds and returns the docs-by-terms weight matrix.
// An empty vocabulary after filtering is an error, not an empty matrix.
func (v *Vectorizer) FitTransform(docs []string) (*mat.Dense, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("tfidf: empty corpus")
	}

	cv := nlp.NewCountVectoriser(v.cfg.StopWords...)
	counts, err := cv.FitTransform(docs...)
	if err != nil {
		return nil, fmt.Errorf("count terms: %w", err)
	}

	// nlp matrices are terms x documents
	numTerms, numDocs := counts.Dims()
	if numDocs != len(docs) {
		return nil, fmt.Errorf("count matrix has %d columns for %d documents", numDocs, len(docs))
	}

	df := make([]int, numTerms)
	total := make([]float64, numTerms)
	for t := 0; t < numTerms; t++ {
		for d := 0; d < numDocs; d++ {
			c := counts.At(t, d)
			if c > 0 {
				df[t]++
				total[t] += c
			}
		}
	}

	selected := v.selectTerms(cv.Vocabulary, df, total, numDocs)
	if len(selected) == 0 {
		return nil, fmt.Errorf("tfidf: no terms satisfy min_df=%d max_df=%.2f over %d documents",
			v.cfg.MinDF, v.cfg.MaxDF, numDocs)
	}

	v.vocab = make([]string, len(selected))
	v.lookup = make(map[string]int, len(selected))
	for i, s := range selected {
		v.vocab[i] = s.term
		v.lookup[s.term] = i
	}

	weights := mat.NewDense(numDocs, len(selected), nil)
	n := float64(numDocs)
	for col, s := range selected {
		idf := math.Log((1+n)/(1+float64(df[s.index]))) + 1
		for d := 0; d < numDocs; d++ {
			weights.Set(d, col, counts.At(s.index, d)*idf)
		}
	}
	normalizeRows(weights)

	return weights, nil
}

// Vocabulary returns the fitted terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.vocab))
	copy(out, v.vocab)
	return out
}

// TermIndex is the reverse lookup from term to column index.
func (v *Vectorizer) TermIndex(term string) (int, bool) {
	i, ok := v.lookup[term]
	return i, ok
}

type scoredTerm struct {
	term  string
	index int
	total float64
}

// selectTerms applies the df bounds, then the feature cap, and orders the
// survivors lexicographically so column indexing is reproducible.
func (v *Vectorizer) selectTerms(vocab map[string]int, df []int, total []float64, numDocs int) []scoredTerm {
	maxDF := numDocs
	if v.cfg.MaxDF > 0 {
		maxDF = int(math.Floor(v.cfg.MaxDF * float64(numDocs)))
	}
	minDF := v.cfg.MinDF
	if minDF < 1 {
		minDF = 1
	}

	kept := make([]scoredTerm, 0, len(vocab))
	for term, idx := range vocab {
		if df[idx] < minDF || df[idx] > maxDF {
			continue
		}
		kept = append(kept, scoredTerm{term: term, index: idx, total: total[idx]})
	}

	if v.cfg.MaxFeatures > 0 && len(kept) > v.cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if kept[i].total != kept[j].total {
				return kept[i].total > kept[j].total
			}
			return kept[i].term < kept[j].term
		})
		kept = kept[:v.cfg.MaxFeatures]
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].term < kept[j].term })
	return kept
}

// normalizeRows rescales each document row to unit Euclidean length.
// All-zero rows stay zero.
func normalizeRows(m *mat.Dense) {
	rows, cols := m.Dims()
	for r := 0; r < rows; r++ {
		var ss float64
		for c := 0; c < cols; c++ {
			val := m.At(r, c)
			ss += val * val
		}
		if ss == 0 {
			continue
		}
		norm := math.Sqrt(ss)
		for c := 0; c < cols; c++ {
			m.Set(r, c, m.At(r, c)/norm)
		}
	}
}
