package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/topics"
)

// fakeModel scripts the per-topic reports the driver walks over.
type fakeModel struct {
	summaries []domain.TopicSummary
	freqs     []domain.TermWeight
}

func (f *fakeModel) NumTopics() int { return len(f.summaries) }

func (f *fakeModel) Summary(sub domain.Subcorpus, topic, nWords int) (domain.TopicSummary, error) {
	s := f.summaries[topic]
	s.Subcorpus = sub
	s.Topic = topic
	return s, nil
}

func (f *fakeModel) TermFrequencies(int) ([]domain.TermWeight, error) {
	return f.freqs, nil
}

type recordingRenderer struct {
	clouds []domain.TopicCloud
}

func (r *recordingRenderer) Render(_ context.Context, cloud domain.TopicCloud) error {
	r.clouds = append(r.clouds, cloud)
	return nil
}

type recordingRepository struct {
	saved []domain.TopicSummary
}

func (r *recordingRepository) SaveSummary(_ context.Context, s domain.TopicSummary) error {
	r.saved = append(r.saved, s)
	return nil
}

type listCaptions struct {
	captions []string
}

func (l *listCaptions) Caption(_ context.Context, _ domain.Subcorpus, topic int) (string, error) {
	return l.captions[topic], nil
}

func TestVisualizeSkipsRenderForEmptyTopics(t *testing.T) {
	t.Parallel()

	m := &fakeModel{
		summaries: []domain.TopicSummary{
			{MemberCount: 3, TopTerms: []domain.TermWeight{{Term: "pay", Weight: 0.5}}},
			{MemberCount: 0, TopTerms: []domain.TermWeight{{Term: "culture", Weight: 0.4}}},
			{MemberCount: 1, TopTerms: []domain.TermWeight{{Term: "manager", Weight: 0.3}}},
		},
		freqs: []domain.TermWeight{{Term: "pay", Weight: 1}},
	}

	renderer := &recordingRenderer{}
	repo := &recordingRepository{}
	var out bytes.Buffer

	p := NewPipeline(PipelineDeps{
		Captions:   &listCaptions{captions: []string{"Pay", "Culture", "Management"}},
		Renderer:   renderer,
		Repository: repo,
		Out:        &out,
	})

	if err := p.visualize(context.Background(), domain.SubcorpusUnfavorable, m); err != nil {
		t.Fatalf("visualize returned error: %v", err)
	}

	if len(renderer.clouds) != 2 {
		t.Fatalf("expected 2 rendered clouds, got %d", len(renderer.clouds))
	}
	for _, cloud := range renderer.clouds {
		if cloud.Topic == 1 {
			t.Fatal("zero-member topic was rendered")
		}
	}

	// Every topic is summarized and persisted, including the empty one.
	if len(repo.saved) != 3 {
		t.Fatalf("expected 3 persisted summaries, got %d", len(repo.saved))
	}

	text := out.String()
	if !strings.Contains(text, "Summary of Topic 1:") {
		t.Fatalf("empty topic summary missing from output:\n%s", text)
	}
	if !strings.Contains(text, "Number of reviews in topic: 0") {
		t.Fatalf("zero member count missing from output:\n%s", text)
	}
}

func TestVisualizePassesCaptionsAndCounts(t *testing.T) {
	t.Parallel()

	m := &fakeModel{
		summaries: []domain.TopicSummary{
			{MemberCount: 7, TopTerms: []domain.TermWeight{{Term: "pay", Weight: 0.5}}},
		},
		freqs: []domain.TermWeight{{Term: "pay", Weight: 0.6}, {Term: "bonus", Weight: 0.4}},
	}

	renderer := &recordingRenderer{}
	p := NewPipeline(PipelineDeps{
		Captions: &listCaptions{captions: []string{"Compensation"}},
		Renderer: renderer,
	})

	if err := p.visualize(context.Background(), domain.SubcorpusFavorable, m); err != nil {
		t.Fatalf("visualize returned error: %v", err)
	}

	if len(renderer.clouds) != 1 {
		t.Fatalf("expected 1 cloud, got %d", len(renderer.clouds))
	}
	cloud := renderer.clouds[0]
	if cloud.Caption != "Compensation" || cloud.MemberCount != 7 || cloud.Subcorpus != domain.SubcorpusFavorable {
		t.Fatalf("unexpected cloud metadata: %+v", cloud)
	}
	if len(cloud.Frequencies) != 2 {
		t.Fatalf("frequencies not forwarded: %+v", cloud.Frequencies)
	}
}

// fixedSource returns a canned corpus regardless of subcorpus.
type fixedSource struct {
	reviews []domain.Review
}

func (f *fixedSource) Load(_ context.Context, _ domain.Subcorpus) ([]domain.Review, error) {
	return f.reviews, nil
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	seed := int64(42)
	source := &fixedSource{reviews: []domain.Review{
		{Text: "pay bonus salary pay"},
		{Text: "salary pay bonus"},
		{Text: "culture office team culture"},
		{Text: "team office culture"},
		{Text: "manager culture team"},
		{Text: "bonus salary manager"},
	}}
	renderer := &recordingRenderer{}
	var out bytes.Buffer

	p := NewPipeline(PipelineDeps{
		Source:   source,
		Captions: &listCaptions{captions: []string{"First", "Second"}},
		Renderer: renderer,
		Out:      &out,
		Model: topics.Config{
			MinDF:   1,
			MaxDF:   1.0,
			Alpha:   0.1,
			L1Ratio: 0.25,
			Seed:    &seed,
		},
		TopWords: 3,
	})

	err := p.Run(context.Background(), Job{Subcorpus: domain.SubcorpusFavorable, Topics: 2})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !strings.Contains(out.String(), "Summary of Topic 0:") {
		t.Fatalf("missing topic summary in output:\n%s", out.String())
	}

	err = p.Run(context.Background(), Job{Subcorpus: domain.SubcorpusFavorable, Topics: 50})
	if err == nil {
		t.Fatal("expected error when topics exceed corpus bounds")
	}
}
