package ports

import (
	"context"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
)

// ReviewSource loads the prepared review table for one subcorpus.
type ReviewSource interface {
	Load(ctx context.Context, sub domain.Subcorpus) ([]domain.Review, error)
}

// CaptionProvider supplies the human caption for a topic's word cloud.
// Implementations may prompt interactively or replay a pre-supplied list.
type CaptionProvider interface {
	Caption(ctx context.Context, sub domain.Subcorpus, topic int) (string, error)
}

// CloudRenderer turns a topic's term-frequency distribution into a saved image.
type CloudRenderer interface {
	Render(ctx context.Context, cloud domain.TopicCloud) error
}

// SummaryRepository persists per-topic summaries for later inspection.
// The model itself never persists anything; this is an optional sink.
type SummaryRepository interface {
	SaveSummary(ctx context.Context, summary domain.TopicSummary) error
}
