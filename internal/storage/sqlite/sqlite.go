package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite history repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite history repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite history repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// SaveTemplate records a template upload.
func (r *Repository) SaveTemplate(ctx context.Context, t model.TemplateRecord) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid template record: %w", err)
	}

	var analyzedAt *int64
	if t.AnalyzedAt != nil {
		u := t.AnalyzedAt.Unix()
		analyzedAt = &u
	}

	query := `
		INSERT INTO templates (template_id, filename, size_bytes, uploaded_at, analyzed_at, slide_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.TemplateID,
		t.Filename,
		t.SizeBytes,
		t.UploadedAt.Unix(),
		analyzedAt,
		t.SlideCount,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("template %s already recorded: %w", t.TemplateID, model.ErrNotValid)
		}
		return fmt.Errorf("could not insert template record: %w", err)
	}

	r.logger.Debugf("Recorded template upload: %s", t.TemplateID)
	return nil
}

// GetTemplate retrieves a template record by ID.
func (r *Repository) GetTemplate(ctx context.Context, templateID string) (*model.TemplateRecord, error) {
	query := `
		SELECT template_id, filename, size_bytes, uploaded_at, analyzed_at, slide_count
		FROM templates
		WHERE template_id = ?
	`

	record, err := r.scanTemplate(r.db.QueryRowContext(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template %s: %w", templateID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query template record: %w", err)
	}

	return &record, nil
}

// GetLatestTemplate retrieves the most recently uploaded template record.
func (r *Repository) GetLatestTemplate(ctx context.Context) (*model.TemplateRecord, error) {
	query := `
		SELECT template_id, filename, size_bytes, uploaded_at, analyzed_at, slide_count
		FROM templates
		ORDER BY uploaded_at DESC, template_id DESC
		LIMIT 1
	`

	record, err := r.scanTemplate(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no templates recorded: %w", model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query template record: %w", err)
	}

	return &record, nil
}

// ListTemplates returns all template records, most recent first.
func (r *Repository) ListTemplates(ctx context.Context) ([]model.TemplateRecord, error) {
	query := `
		SELECT template_id, filename, size_bytes, uploaded_at, analyzed_at, slide_count
		FROM templates
		ORDER BY uploaded_at DESC, template_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query template records: %w", err)
	}
	defer rows.Close()

	var records []model.TemplateRecord
	for rows.Next() {
		record, err := r.scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// MarkTemplateAnalyzed records template analysis completion.
func (r *Repository) MarkTemplateAnalyzed(ctx context.Context, templateID string, analyzedAt time.Time, slideCount int) error {
	query := `UPDATE templates SET analyzed_at = ?, slide_count = ? WHERE template_id = ?`

	result, err := r.db.ExecContext(ctx, query, analyzedAt.Unix(), slideCount, templateID)
	if err != nil {
		return fmt.Errorf("could not update template record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("template %s: %w", templateID, model.ErrNotFound)
	}

	r.logger.Debugf("Recorded analysis of template %s (%d slides)", templateID, slideCount)
	return nil
}

// SaveGeneration records a generation request.
func (r *Repository) SaveGeneration(ctx context.Context, g model.GenerationRecord) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid generation record: %w", err)
	}

	query := `
		INSERT INTO generations (generation_id, kind, slide_count, state, total_pages, output_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		g.GenerationID,
		g.Kind,
		g.SlideCount,
		g.State,
		g.TotalPages,
		g.OutputPath,
		g.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("generation %s already recorded: %w", g.GenerationID, model.ErrNotValid)
		}
		return fmt.Errorf("could not insert generation record: %w", err)
	}

	r.logger.Debugf("Recorded generation: %s", g.GenerationID)
	return nil
}

// UpdateGenerationResult records the terminal outcome of a generation.
func (r *Repository) UpdateGenerationResult(ctx context.Context, generationID string, state model.OperationState, totalPages int) error {
	query := `UPDATE generations SET state = ?, total_pages = ? WHERE generation_id = ?`

	result, err := r.db.ExecContext(ctx, query, state, totalPages, generationID)
	if err != nil {
		return fmt.Errorf("could not update generation record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("generation %s: %w", generationID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated generation %s: %s (%d pages)", generationID, state, totalPages)
	return nil
}

// ListGenerations returns all generation records, most recent first.
func (r *Repository) ListGenerations(ctx context.Context) ([]model.GenerationRecord, error) {
	query := `
		SELECT generation_id, kind, slide_count, state, total_pages, output_path, created_at
		FROM generations
		ORDER BY created_at DESC, generation_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query generation records: %w", err)
	}
	defer rows.Close()

	var records []model.GenerationRecord
	for rows.Next() {
		var g model.GenerationRecord
		var kind, state string
		var createdAt int64

		err := rows.Scan(&g.GenerationID, &kind, &g.SlideCount, &state, &g.TotalPages, &g.OutputPath, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		g.Kind = model.GenerationKind(kind)
		g.State = model.OperationState(state)
		g.CreatedAt = timeFromUnix(createdAt)
		records = append(records, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanTemplate(s scanner) (model.TemplateRecord, error) {
	var record model.TemplateRecord
	var uploadedAt sql.NullInt64
	var analyzedAt sql.NullInt64

	err := s.Scan(
		&record.TemplateID,
		&record.Filename,
		&record.SizeBytes,
		&uploadedAt,
		&analyzedAt,
		&record.SlideCount,
	)
	if err != nil {
		return model.TemplateRecord{}, err
	}

	if !uploadedAt.Valid {
		return model.TemplateRecord{}, fmt.Errorf("uploaded_at is required")
	}
	record.UploadedAt = timeFromUnix(uploadedAt.Int64)

	if analyzedAt.Valid {
		t := timeFromUnix(analyzedAt.Int64)
		record.AnalyzedAt = &t
	}

	return record, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
