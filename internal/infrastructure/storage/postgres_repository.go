package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/ports"
)

// PostgresRepository persists per-topic summaries into Postgres so runs can
// be compared later. The model itself never touches this.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.SummaryRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveSummary upserts the summary snapshot keyed by (subcorpus, topic).
func (r *PostgresRepository) SaveSummary(ctx context.Context, summary domain.TopicSummary) error {
	if r.db == nil {
		return nil
	}

	terms := make([]string, len(summary.TopTerms))
	for i, tw := range summary.TopTerms {
		terms[i] = tw.Term
	}

	query, args, err := r.builder.
		Insert("topic_summaries").
		Columns("subcorpus", "topic", "member_count", "top_terms").
		Values(string(summary.Subcorpus), summary.Topic, summary.MemberCount, pq.StringArray(terms)).
		Suffix(`ON CONFLICT (subcorpus, topic) DO UPDATE
		        SET member_count = EXCLUDED.member_count,
		            top_terms = EXCLUDED.top_terms,
		            updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}

	return nil
}
