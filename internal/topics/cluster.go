// Package topics holds the fitted model object: a TF-IDF weighted corpus
// factored into topics, with soft membership labels and per-topic reports.
package topics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/nmf"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/tfidf"
)

// DefaultThreshold is the membership cutoff on document-topic proportions.
const DefaultThreshold = 0.20

// Config carries every knob for one fitted cluster.
type Config struct {
	Topics      int
	MaxFeatures int
	MaxDF       float64
	MinDF       int
	Alpha       float64
	L1Ratio     float64
	Seed        *int64
	// Threshold is the minimum proportion for topic membership.
	// Zero takes DefaultThreshold.
	Threshold float64
	StopWords []string
}

// Cluster owns the derived matrices for one subcorpus. All of them are
// recomputed by Fit; nothing is persisted here.
type Cluster struct {
	cfg       Config
	threshold float64

	vocab  []string
	lookup map[string]int

	docTopic    *mat.Dense // W: documents x topics
	topicTerm   *mat.Dense // H: topics x terms
	proportions *mat.Dense // W row-rescaled to sum to 1 (or uniformly 0)
	labels      [][]bool
}

// NewCluster validates the configuration eagerly so a bad topic count never
// reaches the solver.
func NewCluster(cfg Config) (*Cluster, error) {
	if cfg.Topics <= 0 {
		return nil, fmt.Errorf("topics: topic count %d must be positive", cfg.Topics)
	}
	if cfg.MaxDF < 0 || cfg.MaxDF > 1 {
		return nil, fmt.Errorf("topics: max_df %.2f outside [0,1]", cfg.MaxDF)
	}
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("topics: membership threshold %.2f outside [0,1]", cfg.Threshold)
	}
	return &Cluster{cfg: cfg, threshold: threshold}, nil
}

// NumTopics reports the fixed topic count.
func (c *Cluster) NumTopics() int { return c.cfg.Topics }

// Fit vectorizes the documents and factors the weight matrix into topics,
// then assigns membership labels. Any previous fit is discarded.
func (c *Cluster) Fit(texts []string) error {
	vectorizer := tfidf.NewVectorizer(tfidf.Config{
		MaxFeatures: c.cfg.MaxFeatures,
		MaxDF:       c.cfg.MaxDF,
		MinDF:       c.cfg.MinDF,
		StopWords:   c.cfg.StopWords,
	})

	weights, err := vectorizer.FitTransform(texts)
	if err != nil {
		return fmt.Errorf("weight corpus: %w", err)
	}
	c.setVocabulary(vectorizer.Vocabulary())

	w, h, err := nmf.Factorize(weights, nmf.Params{
		Components: c.cfg.Topics,
		Alpha:      c.cfg.Alpha,
		L1Ratio:    c.cfg.L1Ratio,
		Seed:       c.cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("factorize corpus: %w", err)
	}

	c.docTopic = w
	c.topicTerm = h
	c.assign(w)
	return nil
}

// assign derives proportions and membership labels from a document-topic
// weight matrix. A document with zero total weight gets an all-zero
// proportions row and belongs to no topic.
func (c *Cluster) assign(w *mat.Dense) {
	docs, topics := w.Dims()
	c.proportions = mat.NewDense(docs, topics, nil)
	c.labels = make([][]bool, docs)

	for d := 0; d < docs; d++ {
		var sum float64
		for t := 0; t < topics; t++ {
			sum += w.At(d, t)
		}
		c.labels[d] = make([]bool, topics)
		if sum == 0 {
			continue
		}
		for t := 0; t < topics; t++ {
			p := w.At(d, t) / sum
			c.proportions.Set(d, t, p)
			c.labels[d][t] = p >= c.threshold
		}
	}
}

func (c *Cluster) setVocabulary(vocab []string) {
	c.vocab = vocab
	c.lookup = make(map[string]int, len(vocab))
	for i, term := range vocab {
		c.lookup[term] = i
	}
}

// Vocabulary returns the fitted terms in column order.
func (c *Cluster) Vocabulary() []string {
	out := make([]string, len(c.vocab))
	copy(out, c.vocab)
	return out
}

// TermIndex is the reverse lookup from term to matrix column.
func (c *Cluster) TermIndex(term string) (int, bool) {
	i, ok := c.lookup[term]
	return i, ok
}

// TopTerms returns the n highest-weighted terms of a topic, descending by
// weight; ties keep vocabulary order. Asking for more terms than the
// vocabulary holds returns the whole vocabulary.
func (c *Cluster) TopTerms(topic, n int) ([]domain.TermWeight, error) {
	if err := c.checkTopic(topic); err != nil {
		return nil, err
	}
	vocab := c.Vocabulary()
	if n > len(vocab) {
		n = len(vocab)
	}
	if n <= 0 {
		return nil, nil
	}

	idx := make([]int, len(vocab))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return c.topicTerm.At(topic, idx[i]) > c.topicTerm.At(topic, idx[j])
	})

	out := make([]domain.TermWeight, n)
	for i := 0; i < n; i++ {
		out[i] = domain.TermWeight{Term: vocab[idx[i]], Weight: c.topicTerm.At(topic, idx[i])}
	}
	return out, nil
}

// Attribution lists the topics a document is labeled with, as
// (topic, proportion) pairs sorted descending by proportion.
func (c *Cluster) Attribution(doc int) ([]domain.TopicAttribution, error) {
	if c.proportions == nil {
		return nil, fmt.Errorf("topics: model is not fitted")
	}
	docs, _ := c.proportions.Dims()
	if doc < 0 || doc >= docs {
		return nil, fmt.Errorf("topics: document index %d outside [0,%d)", doc, docs)
	}

	var out []domain.TopicAttribution
	for t := 0; t < c.cfg.Topics; t++ {
		if c.labels[doc][t] {
			out = append(out, domain.TopicAttribution{Topic: t, Proportion: c.proportions.At(doc, t)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Proportion > out[j].Proportion })
	return out, nil
}

// TermFrequencies pairs every vocabulary term with its topic weight
// normalized so the whole distribution sums to 1.
func (c *Cluster) TermFrequencies(topic int) ([]domain.TermWeight, error) {
	if err := c.checkTopic(topic); err != nil {
		return nil, err
	}
	vocab := c.Vocabulary()

	var sum float64
	for i := range vocab {
		sum += c.topicTerm.At(topic, i)
	}

	out := make([]domain.TermWeight, len(vocab))
	for i, term := range vocab {
		w := 0.0
		if sum > 0 {
			w = c.topicTerm.At(topic, i) / sum
		}
		out[i] = domain.TermWeight{Term: term, Weight: w}
	}
	return out, nil
}

// MemberCount counts the documents labeled with a topic.
func (c *Cluster) MemberCount(topic int) (int, error) {
	if err := c.checkTopic(topic); err != nil {
		return 0, err
	}
	count := 0
	for d := range c.labels {
		if c.labels[d][topic] {
			count++
		}
	}
	return count, nil
}

// Summary reports the member count and top nWords terms for one topic.
func (c *Cluster) Summary(sub domain.Subcorpus, topic, nWords int) (domain.TopicSummary, error) {
	count, err := c.MemberCount(topic)
	if err != nil {
		return domain.TopicSummary{}, err
	}
	top, err := c.TopTerms(topic, nWords)
	if err != nil {
		return domain.TopicSummary{}, err
	}
	return domain.TopicSummary{
		Subcorpus:   sub,
		Topic:       topic,
		MemberCount: count,
		TopTerms:    top,
	}, nil
}

func (c *Cluster) checkTopic(topic int) error {
	if c.topicTerm == nil {
		return fmt.Errorf("topics: model is not fitted")
	}
	if topic < 0 || topic >= c.cfg.Topics {
		return fmt.Errorf("topics: topic index %d outside [0,%d)", topic, c.cfg.Topics)
	}
	return nil
}
