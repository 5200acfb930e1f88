package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"mailtriage/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	s := &PostgresStorage{db: db, logger: logger}

	if err := s.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return s, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	s.logger.Info("Applied database migrations")
	return nil
}

func (s *PostgresStorage) Save(ctx context.Context, email *models.Email) error {
	if email.ID == 0 {
		return s.insert(ctx, email)
	}
	return s.update(ctx, email)
}

func (s *PostgresStorage) insert(ctx context.Context, email *models.Email) error {
	query := `
		INSERT INTO emails (from_email, subject, body, category, confidence, draft_reply, requires_human_review)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		email.FromEmail,
		email.Subject,
		email.Body,
		string(email.Category),
		email.Confidence,
		email.DraftReply,
		email.RequiresHumanReview,
	).Scan(&email.ID, &email.CreatedAt, &email.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating email: %w", err)
	}

	return nil
}

func (s *PostgresStorage) update(ctx context.Context, email *models.Email) error {
	query := `
		UPDATE emails
		SET category = $1, confidence = $2, draft_reply = $3, requires_human_review = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		string(email.Category),
		email.Confidence,
		email.DraftReply,
		email.RequiresHumanReview,
		email.ID,
	).Scan(&email.CreatedAt, &email.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}

	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, id int64) (*models.Email, error) {
	query := `
		SELECT id, from_email, subject, body, category, confidence, draft_reply, requires_human_review, created_at, updated_at
		FROM emails
		WHERE id = $1`

	email, err := scanEmail(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying email: %w", err)
	}

	return email, nil
}

func (s *PostgresStorage) List(ctx context.Context) ([]*models.Email, error) {
	query := `
		SELECT id, from_email, subject, body, category, confidence, draft_reply, requires_human_review, created_at, updated_at
		FROM emails
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying emails: %w", err)
	}
	defer rows.Close()

	var emails []*models.Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emails: %w", err)
	}

	return emails, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmail(row rowScanner) (*models.Email, error) {
	email := &models.Email{}
	var category string
	err := row.Scan(
		&email.ID,
		&email.FromEmail,
		&email.Subject,
		&email.Body,
		&category,
		&email.Confidence,
		&email.DraftReply,
		&email.RequiresHumanReview,
		&email.CreatedAt,
		&email.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Rows predating a taxonomy change are not trusted blindly.
	parsed, err := models.ParseCategory(category)
	if err != nil {
		parsed = models.CategoryInconclusive
	}
	email.Category = parsed

	return email, nil
}
