package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
)

// reviewRow mirrors the review table schema produced by the cleaning stage.
type reviewRow struct {
	LemmatizedText string `parquet:"lemmatized_text"`
}

// ParquetReader decodes parquet review tables.
type ParquetReader struct{}

var _ Reader = (*ParquetReader)(nil)

// NewParquetReader builds a parquet table reader.
func NewParquetReader() *ParquetReader {
	return &ParquetReader{}
}

// Name identifies the format inside the registry.
func (p *ParquetReader) Name() string {
	return "parquet"
}

// Read loads every row of the table. The schema is checked for the text
// column up front so a wrong table fails with a clear message instead of a
// decoding surprise.
func (p *ParquetReader) Read(ctx context.Context, path string) ([]domain.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open review table: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat review table: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse parquet file: %w", err)
	}
	if !hasTextColumn(pf) {
		return nil, fmt.Errorf("table %s has no %q column", path, textColumn)
	}

	rows, err := parquet.Read[reviewRow](f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reviews = append(reviews, domain.Review{Text: row.LemmatizedText})
	}
	return reviews, nil
}

// hasTextColumn scans the leaf column paths for the lemmatized-text field.
func hasTextColumn(pf *parquet.File) bool {
	for _, path := range pf.Schema().Columns() {
		if len(path) > 0 && path[0] == textColumn {
			return true
		}
	}
	return false
}
