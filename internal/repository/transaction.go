package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/tpdocs/tpdocs/internal/model"
)

// Common errors for transaction repository operations.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

const transactionColumns = `id, name, type, begin_at, end_at, persons_of_contact, entities, questionnaire, created_at, updated_at`

// TransactionFilter defines filters for listing transactions.
type TransactionFilter struct {
	// EntityIDs matches any transaction with a participant whose
	// entityId is in the set (any-of semantics).
	EntityIDs []string
	// ParticipantType matches on the participants' type, not the
	// transaction's own type. Documented current behavior.
	ParticipantType string
}

// TransactionListItem is the condensed projection returned from
// transaction listings: questionnaire, updatedAt and the embedded
// snapshot arrays are omitted.
type TransactionListItem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Begin     *time.Time `json:"begin,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateTransaction inserts a new transaction into the database.
func (r *Repository) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (id, name, type, begin_at, end_at, persons_of_contact, entities, questionnaire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	persons, entities, questionnaire, err := marshalTransactionJSONB(tx)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		tx.ID,
		tx.Name,
		tx.Type,
		tx.Begin,
		tx.End,
		persons,
		entities,
		questionnaire,
		tx.CreatedAt,
		tx.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (r *Repository) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

// ListTransactions retrieves the condensed transaction projection sorted
// by descending creation time, optionally filtered by participants.
func (r *Repository) ListTransactions(ctx context.Context, filter TransactionFilter, skip, limit int) ([]*TransactionListItem, error) {
	query := `
		SELECT id, name, type, begin_at, end_at, created_at
		FROM transactions
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if len(filter.EntityIDs) > 0 {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(entities) AS p
			WHERE p->>'entityId' = ANY($%d)
		)`, argIndex)
		args = append(args, pq.Array(filter.EntityIDs))
		argIndex++
	}

	if filter.ParticipantType != "" {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(entities) AS p
			WHERE p->>'type' = $%d
		)`, argIndex)
		args = append(args, filter.ParticipantType)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC OFFSET $%d LIMIT $%d", argIndex, argIndex+1)
	args = append(args, skip, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	items := []*TransactionListItem{}
	for rows.Next() {
		var item TransactionListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Begin, &item.End, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return items, nil
}

// UpdateTransaction replaces all mutable fields of a transaction record.
func (r *Repository) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE transactions
		SET name = $2, type = $3, begin_at = $4, end_at = $5,
		    persons_of_contact = $6, entities = $7, questionnaire = $8, updated_at = $9
		WHERE id = $1
	`

	persons, entities, questionnaire, err := marshalTransactionJSONB(tx)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.Name,
		tx.Type,
		tx.Begin,
		tx.End,
		persons,
		entities,
		questionnaire,
		tx.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a transaction and returns its last known state.
func (r *Repository) DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	query := `DELETE FROM transactions WHERE id = $1 RETURNING ` + transactionColumns

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return tx, nil
}

// scanTransaction scans a full transaction row, decoding the JSONB payloads.
func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var tx model.Transaction
	var persons, entities, questionnaire []byte

	err := row.Scan(
		&tx.ID,
		&tx.Name,
		&tx.Type,
		&tx.Begin,
		&tx.End,
		&persons,
		&entities,
		&questionnaire,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(persons, &tx.PersonsOfContact); err != nil {
		return nil, fmt.Errorf("failed to decode persons of contact: %w", err)
	}
	if err := json.Unmarshal(entities, &tx.Entities); err != nil {
		return nil, fmt.Errorf("failed to decode entities: %w", err)
	}
	if err := json.Unmarshal(questionnaire, &tx.Questionnaire); err != nil {
		return nil, fmt.Errorf("failed to decode questionnaire: %w", err)
	}
	tx.Normalize()

	return &tx, nil
}

// marshalTransactionJSONB encodes the embedded documents of a transaction.
func marshalTransactionJSONB(tx *model.Transaction) (persons, entities, questionnaire []byte, err error) {
	persons, err = marshalJSONB(tx.PersonsOfContact)
	if err != nil {
		return nil, nil, nil, err
	}
	entities, err = marshalJSONB(tx.Entities)
	if err != nil {
		return nil, nil, nil, err
	}
	questionnaire, err = marshalJSONB(tx.Questionnaire)
	if err != nil {
		return nil, nil, nil, err
	}
	return persons, entities, questionnaire, nil
}
