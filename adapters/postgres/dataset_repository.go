package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// datasetRow mirrors the datasets table
type datasetRow struct {
	ID          string         `db:"id"`
	Filename    string         `db:"filename"`
	MimeType    string         `db:"mime_type"`
	FileSize    int64          `db:"file_size"`
	Source      string         `db:"source"`
	Headers     pq.StringArray `db:"headers"`
	Rows        []byte         `db:"rows"`
	RowCount    int            `db:"row_count"`
	ColumnCount int            `db:"column_count"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Create inserts a new dataset into the database
func (r *datasetRepository) Create(ctx context.Context, ds *dataset.StoredDataset) error {
	rowsJSON, err := json.Marshal(ds.Data.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	query := `INSERT INTO datasets (
		id, filename, mime_type, file_size, source, headers, rows,
		row_count, column_count, created_at, updated_at
	) VALUES (
		:id, :filename, :mime_type, :file_size, :source, :headers, :rows,
		:row_count, :column_count, :created_at, :updated_at
	)`

	_, err = r.db.NamedExecContext(ctx, query, datasetRow{
		ID:          ds.ID.String(),
		Filename:    ds.Filename,
		MimeType:    ds.MimeType,
		FileSize:    ds.FileSize,
		Source:      string(ds.Source),
		Headers:     pq.StringArray(ds.Data.ColumnNames()),
		Rows:        rowsJSON,
		RowCount:    ds.RowCount,
		ColumnCount: ds.ColumnCount,
		CreatedAt:   ds.CreatedAt,
		UpdatedAt:   ds.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.ID) (*dataset.StoredDataset, error) {
	query := `SELECT
		id, filename, COALESCE(mime_type, '') as mime_type, COALESCE(file_size, 0) as file_size,
		source, headers, rows, row_count, column_count, created_at, updated_at
	FROM datasets WHERE id = $1`

	var row datasetRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	var rows []dataset.Row
	if len(row.Rows) > 0 {
		if err := json.Unmarshal(row.Rows, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rows: %w", err)
		}
	}

	return &dataset.StoredDataset{
		ID:          core.ID(row.ID),
		Filename:    row.Filename,
		MimeType:    row.MimeType,
		FileSize:    row.FileSize,
		Source:      dataset.Source(row.Source),
		RowCount:    row.RowCount,
		ColumnCount: row.ColumnCount,
		Data:        dataset.New([]string(row.Headers), rows),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// List retrieves dataset summaries with pagination, newest first
func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]dataset.Summary, error) {
	query := `SELECT
		id, filename, COALESCE(mime_type, '') as mime_type, COALESCE(file_size, 0) as file_size,
		source, headers, row_count, column_count, created_at, updated_at
	FROM datasets
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2`

	// LIMIT NULL is LIMIT ALL
	var pageSize interface{}
	if limit > 0 {
		pageSize = limit
	}
	if offset < 0 {
		offset = 0
	}

	var rows []datasetRow
	if err := r.db.SelectContext(ctx, &rows, query, pageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}

	summaries := make([]dataset.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dataset.Summary{
			ID:          core.ID(row.ID),
			Filename:    row.Filename,
			FileSize:    row.FileSize,
			MimeType:    row.MimeType,
			Source:      dataset.Source(row.Source),
			Headers:     []string(row.Headers),
			RowCount:    row.RowCount,
			ColumnCount: row.ColumnCount,
			CreatedAt:   row.CreatedAt,
		})
	}

	return summaries, nil
}

// Delete removes a dataset from the database
func (r *datasetRepository) Delete(ctx context.Context, id core.ID) error {
	query := `DELETE FROM datasets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}

	return nil
}
