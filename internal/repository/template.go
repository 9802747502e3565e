package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tpdocs/tpdocs/internal/model"
)

// Common errors for template repository operations.
var (
	ErrTemplateNotFound = errors.New("template not found")
)

const templateColumns = `id, target, type, version, questionnaire, created_at, updated_at`

// CreateTemplate inserts a new template into the database.
func (r *Repository) CreateTemplate(ctx context.Context, tmpl *model.Template) error {
	query := `
		INSERT INTO templates (id, target, type, version, questionnaire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	questionnaire, err := marshalJSONB(tmpl.Questionnaire)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		tmpl.ID,
		tmpl.For,
		tmpl.Type,
		tmpl.Version,
		questionnaire,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetTemplateByID retrieves a template by its ID.
func (r *Repository) GetTemplateByID(ctx context.Context, id string) (*model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1`

	tmpl, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template by ID: %w", err)
	}

	return tmpl, nil
}

// ListTemplates retrieves templates sorted by ascending type, optionally
// filtered by their target resource kind ("entity" or "transaction").
func (r *Repository) ListTemplates(ctx context.Context, forFilter string) ([]*model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates`
	args := []any{}

	if forFilter != "" {
		query += ` WHERE target = $1`
		args = append(args, forFilter)
	}

	query += ` ORDER BY type ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := []*model.Template{}
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// UpdateTemplate replaces all mutable fields of a template record.
func (r *Repository) UpdateTemplate(ctx context.Context, tmpl *model.Template) error {
	query := `
		UPDATE templates
		SET target = $2, type = $3, version = $4, questionnaire = $5, updated_at = $6
		WHERE id = $1
	`

	questionnaire, err := marshalJSONB(tmpl.Questionnaire)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query,
		tmpl.ID,
		tmpl.For,
		tmpl.Type,
		tmpl.Version,
		questionnaire,
		tmpl.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// DeleteTemplate removes a template and returns its last known state.
func (r *Repository) DeleteTemplate(ctx context.Context, id string) (*model.Template, error) {
	query := `DELETE FROM templates WHERE id = $1 RETURNING ` + templateColumns

	tmpl, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to delete template: %w", err)
	}

	return tmpl, nil
}

// scanTemplate scans a template row, decoding the questionnaire JSONB.
func scanTemplate(row pgx.Row) (*model.Template, error) {
	var tmpl model.Template
	var questionnaire []byte

	err := row.Scan(
		&tmpl.ID,
		&tmpl.For,
		&tmpl.Type,
		&tmpl.Version,
		&questionnaire,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionnaire, &tmpl.Questionnaire); err != nil {
		return nil, fmt.Errorf("failed to decode questionnaire: %w", err)
	}
	tmpl.Questionnaire.Normalize()

	return &tmpl, nil
}
