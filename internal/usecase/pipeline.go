package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/ports"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/topics"
)

// Job names one subcorpus run with its fixed topic count.
type Job struct {
	Subcorpus domain.Subcorpus
	Topics    int
}

// model is the fitted-cluster surface the visualization driver needs.
type model interface {
	NumTopics() int
	Summary(sub domain.Subcorpus, topic, nWords int) (domain.TopicSummary, error)
	TermFrequencies(topic int) ([]domain.TermWeight, error)
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ReviewSource
	Captions   ports.CaptionProvider
	Renderer   ports.CloudRenderer
	Repository ports.SummaryRepository
	Logger     *slog.Logger
	Out        io.Writer

	// Model is the shared cluster configuration; each job fills in Topics.
	Model topics.Config
	// TopWords bounds the per-topic summary term list.
	TopWords int
}

// Pipeline implements the topic-modeling workflow for one subcorpus:
// load, fit, then walk every topic printing its summary and rendering
// its word cloud.
type Pipeline struct {
	source     ports.ReviewSource
	captions   ports.CaptionProvider
	renderer   ports.CloudRenderer
	repository ports.SummaryRepository
	logger     *slog.Logger
	out        io.Writer

	model    topics.Config
	topWords int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	topWords := deps.TopWords
	if topWords <= 0 {
		topWords = 20
	}
	return &Pipeline{
		source:     deps.Source,
		captions:   deps.Captions,
		renderer:   deps.Renderer,
		repository: deps.Repository,
		logger:     deps.Logger,
		out:        deps.Out,
		model:      deps.Model,
		topWords:   topWords,
	}
}

// Run executes one subcorpus job end to end. Every failure is terminal;
// there are no retries or partial results.
func (p *Pipeline) Run(ctx context.Context, job Job) error {
	if p.source == nil {
		return fmt.Errorf("review source is not configured")
	}

	reviews, err := p.source.Load(ctx, job.Subcorpus)
	if err != nil {
		return fmt.Errorf("load %s reviews: %w", job.Subcorpus, err)
	}
	p.info("reviews loaded", "subcorpus", string(job.Subcorpus), "count", len(reviews))

	cfg := p.model
	cfg.Topics = job.Topics
	cluster, err := topics.NewCluster(cfg)
	if err != nil {
		return fmt.Errorf("configure %s model: %w", job.Subcorpus, err)
	}

	texts := make([]string, len(reviews))
	for i, review := range reviews {
		texts[i] = review.Text
	}
	if err := cluster.Fit(texts); err != nil {
		return fmt.Errorf("fit %s model: %w", job.Subcorpus, err)
	}
	p.info("model fitted", "subcorpus", string(job.Subcorpus), "topics", job.Topics, "vocabulary", len(cluster.Vocabulary()))

	return p.visualize(ctx, job.Subcorpus, cluster)
}

// visualize walks topics in index order: summary first, then the rendered
// cloud. A topic with no member documents is summarized but never rendered.
func (p *Pipeline) visualize(ctx context.Context, sub domain.Subcorpus, cluster model) error {
	for topic := 0; topic < cluster.NumTopics(); topic++ {
		summary, err := cluster.Summary(sub, topic, p.topWords)
		if err != nil {
			return fmt.Errorf("summarize topic %d: %w", topic, err)
		}

		p.printSummary(summary)

		if p.repository != nil {
			if err := p.repository.SaveSummary(ctx, summary); err != nil {
				return fmt.Errorf("persist topic %d summary: %w", topic, err)
			}
		}

		if summary.MemberCount == 0 {
			continue
		}

		caption := ""
		if p.captions != nil {
			caption, err = p.captions.Caption(ctx, sub, topic)
			if err != nil {
				return fmt.Errorf("caption topic %d: %w", topic, err)
			}
		}

		freqs, err := cluster.TermFrequencies(topic)
		if err != nil {
			return fmt.Errorf("topic %d frequencies: %w", topic, err)
		}

		if p.renderer != nil {
			err = p.renderer.Render(ctx, domain.TopicCloud{
				Subcorpus:   sub,
				Topic:       topic,
				Caption:     caption,
				MemberCount: summary.MemberCount,
				Frequencies: freqs,
			})
			if err != nil {
				return fmt.Errorf("render topic %d: %w", topic, err)
			}
		}
	}
	return nil
}

func (p *Pipeline) printSummary(s domain.TopicSummary) {
	if p.out == nil {
		return
	}

	terms := make([]string, len(s.TopTerms))
	for i, tw := range s.TopTerms {
		terms[i] = tw.Term
	}

	fmt.Fprintf(p.out, "Summary of Topic %d:\n", s.Topic)
	fmt.Fprintf(p.out, "Number of reviews in topic: %d\n", s.MemberCount)
	fmt.Fprintf(p.out, "Top %d words in topic:\n", len(s.TopTerms))
	fmt.Fprintf(p.out, "%s\n\n", strings.Join(terms, " "))
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
