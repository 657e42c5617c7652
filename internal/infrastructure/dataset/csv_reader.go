package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
)

// CSVReader decodes comma-separated review tables with a header row.
type CSVReader struct{}

var _ Reader = (*CSVReader)(nil)

// NewCSVReader builds a CSV table reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Name identifies the format inside the registry.
func (c *CSVReader) Name() string {
	return "csv"
}

// Read loads every record, locating the text column via the header.
func (c *CSVReader) Read(ctx context.Context, path string) ([]domain.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open review table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx := -1
	for i, name := range header {
		if name == textColumn {
			textIdx = i
			break
		}
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("table %s has no %q column", path, textColumn)
	}

	var reviews []domain.Review
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		reviews = append(reviews, domain.Review{Text: record[textIdx]})
	}
	return reviews, nil
}
