package postgres

import (
	"context"
	"fmt"

	"go-landing-page/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createSubmissionsTable = `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id          UUID PRIMARY KEY,
	site_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL,
	company     TEXT NOT NULL DEFAULT '',
	interest    TEXT NOT NULL,
	message     TEXT NOT NULL,
	client_ip   TEXT NOT NULL DEFAULT '',
	user_agent  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS contact_submissions_site_created_idx
	ON contact_submissions (site_id, created_at DESC);`

type submissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

// EnsureSchema creates the archive table when it does not exist yet
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, createSubmissionsTable); err != nil {
		return fmt.Errorf("failed to create contact_submissions: %w", err)
	}
	return nil
}

func (r *submissionRepo) Create(ctx context.Context, s *domain.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (id, site_id, name, email, company, interest, message, client_ip, user_agent, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.SiteID, s.Name, s.Email, s.Company, s.Interest, s.Message,
		s.ClientIP, s.UserAgent, s.CreatedAt,
	)
	return err
}
