// Package dataset loads prepared review tables from disk. One reader per
// table format, resolved by name from the registry.
package dataset

import (
	"context"
	"fmt"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
)

// textColumn is the field every review table must carry.
const textColumn = "lemmatized_text"

// Reader decodes one table format into reviews.
type Reader interface {
	Name() string
	Read(ctx context.Context, path string) ([]domain.Review, error)
}

// Registry keeps a mapping from format names to their readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}}
}

// Register adds or replaces a reader implementation.
func (r *Registry) Register(reader Reader) {
	if r.readers == nil {
		r.readers = map[string]Reader{}
	}
	r.readers[reader.Name()] = reader
}

// Resolve returns a reader by format name or an error if it is absent.
func (r *Registry) Resolve(name string) (Reader, error) {
	if reader, ok := r.readers[name]; ok {
		return reader, nil
	}
	return nil, fmt.Errorf("reader for format %s is not registered", name)
}
