package domain

import "fmt"

// Review is a core entity: one free-text employer review, already cleaned and
// lemmatized by the upstream preparation stage.
type Review struct {
	Text string
}

// Subcorpus selects which half of the split corpus a run operates on.
type Subcorpus string

const (
	SubcorpusFavorable   Subcorpus = "favorable"
	SubcorpusUnfavorable Subcorpus = "unfavorable"
)

// Validate rejects labels outside the fixed favorable/unfavorable split.
func (s Subcorpus) Validate() error {
	switch s {
	case SubcorpusFavorable, SubcorpusUnfavorable:
		return nil
	}
	return fmt.Errorf("unknown subcorpus %q", string(s))
}

// TermWeight pairs a vocabulary term with a model weight.
type TermWeight struct {
	Term   string
	Weight float64
}

// TopicAttribution reports how strongly a document belongs to one topic.
type TopicAttribution struct {
	Topic      int
	Proportion float64
}

// TopicSummary aggregates the per-topic report: how many reviews the topic
// claimed and its highest-weighted terms.
type TopicSummary struct {
	Subcorpus   Subcorpus
	Topic       int
	MemberCount int
	TopTerms    []TermWeight
}

// TopicCloud carries everything the renderer needs for one word-cloud image.
// Frequencies are normalized so all weights for the topic sum to 1.
type TopicCloud struct {
	Subcorpus   Subcorpus
	Topic       int
	Caption     string
	MemberCount int
	Frequencies []TermWeight
}
