package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tpdocs/tpdocs/internal/model"
)

// Common errors for entity repository operations.
var (
	ErrEntityNotFound = errors.New("entity not found")
)

const entityColumns = `id, name, shortname, type, country, parent_reporting_entity, questionnaire, created_at, updated_at`

// EntityListItem is the condensed projection returned from entity
// listings: the questionnaire and timestamps are omitted.
type EntityListItem struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Shortname             string                 `json:"shortname,omitempty"`
	Type                  string                 `json:"type"`
	Country               string                 `json:"country"`
	ParentReportingEntity *model.CondensedEntity `json:"parentReportingEntity,omitempty"`
}

// CreateEntity inserts a new entity into the database.
func (r *Repository) CreateEntity(ctx context.Context, entity *model.Entity) error {
	query := `
		INSERT INTO entities (id, name, shortname, type, country, parent_reporting_entity, questionnaire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	parent, err := marshalNullable(entity.ParentReportingEntity)
	if err != nil {
		return err
	}
	questionnaire, err := marshalJSONB(entity.Questionnaire)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		entity.ID,
		entity.Name,
		entity.Shortname,
		entity.Type,
		entity.Country,
		parent,
		questionnaire,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	return nil
}

// GetEntityByID retrieves an entity by its ID.
func (r *Repository) GetEntityByID(ctx context.Context, id string) (*model.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = $1`

	entity, err := scanEntity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity by ID: %w", err)
	}

	return entity, nil
}

// ListEntities retrieves the condensed entity projection sorted by
// descending creation time.
func (r *Repository) ListEntities(ctx context.Context, skip, limit int) ([]*EntityListItem, error) {
	query := `
		SELECT id, name, shortname, type, country, parent_reporting_entity
		FROM entities
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	items := []*EntityListItem{}
	for rows.Next() {
		var item EntityListItem
		var parent []byte
		if err := rows.Scan(&item.ID, &item.Name, &item.Shortname, &item.Type, &item.Country, &parent); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		if len(parent) > 0 {
			item.ParentReportingEntity = &model.CondensedEntity{}
			if err := json.Unmarshal(parent, item.ParentReportingEntity); err != nil {
				return nil, fmt.Errorf("failed to decode parent reporting entity: %w", err)
			}
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}

	return items, nil
}

// UpdateEntity replaces all mutable fields of an entity record.
func (r *Repository) UpdateEntity(ctx context.Context, entity *model.Entity) error {
	query := `
		UPDATE entities
		SET name = $2, shortname = $3, type = $4, country = $5,
		    parent_reporting_entity = $6, questionnaire = $7, updated_at = $8
		WHERE id = $1
	`

	parent, err := marshalNullable(entity.ParentReportingEntity)
	if err != nil {
		return err
	}
	questionnaire, err := marshalJSONB(entity.Questionnaire)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.Name,
		entity.Shortname,
		entity.Type,
		entity.Country,
		parent,
		questionnaire,
		entity.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntityNotFound
	}

	return nil
}

// DeleteEntity removes an entity and returns its last known state.
func (r *Repository) DeleteEntity(ctx context.Context, id string) (*model.Entity, error) {
	query := `DELETE FROM entities WHERE id = $1 RETURNING ` + entityColumns

	entity, err := scanEntity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to delete entity: %w", err)
	}

	return entity, nil
}

// scanEntity scans a full entity row, decoding the JSONB payloads.
func scanEntity(row pgx.Row) (*model.Entity, error) {
	var entity model.Entity
	var parent, questionnaire []byte

	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Shortname,
		&entity.Type,
		&entity.Country,
		&parent,
		&questionnaire,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(parent) > 0 {
		entity.ParentReportingEntity = &model.CondensedEntity{}
		if err := json.Unmarshal(parent, entity.ParentReportingEntity); err != nil {
			return nil, fmt.Errorf("failed to decode parent reporting entity: %w", err)
		}
	}
	if err := json.Unmarshal(questionnaire, &entity.Questionnaire); err != nil {
		return nil, fmt.Errorf("failed to decode questionnaire: %w", err)
	}
	entity.Questionnaire.Normalize()

	return &entity, nil
}

// marshalJSONB encodes a value for a JSONB column.
func marshalJSONB(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb value: %w", err)
	}
	return data, nil
}

// marshalNullable encodes an optional value for a nullable JSONB column.
// A nil pointer is stored as SQL NULL, not the JSON literal null.
func marshalNullable(v *model.CondensedEntity) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return marshalJSONB(v)
}
