package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/config"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/ports"
)

// FileSource implements ReviewSource via registered table readers: one file
// per subcorpus under the configured data directory.
type FileSource struct {
	registry *Registry
	data     config.DataConfig
	logger   *slog.Logger
}

var _ ports.ReviewSource = (*FileSource)(nil)

// NewFileSource wires the reader registry with config-defined locations.
func NewFileSource(reg *Registry, data config.DataConfig, log *slog.Logger) *FileSource {
	return &FileSource{
		registry: reg,
		data:     data,
		logger:   log,
	}
}

// Load reads <dir>/<subcorpus>.<format> into reviews.
func (s *FileSource) Load(ctx context.Context, sub domain.Subcorpus) ([]domain.Review, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("reader registry is not configured")
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	reader, err := s.registry.Resolve(s.data.Format)
	if err != nil {
		return nil, fmt.Errorf("subcorpus %s: %w", sub, err)
	}

	path := filepath.Join(s.data.Dir, fmt.Sprintf("%s.%s", sub, s.data.Format))
	s.debug("load review table", "subcorpus", string(sub), "path", path)

	reviews, err := reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("subcorpus %s: %w", sub, err)
	}

	s.debug("review table loaded", "subcorpus", string(sub), "reviews", len(reviews))
	return reviews, nil
}

func (s *FileSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
