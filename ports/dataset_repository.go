package ports

import (
	"context"

	"chartlab/domain/core"
	"chartlab/domain/dataset"
)

// DatasetRepository defines the interface for dataset storage operations.
// GetByID and Delete return an error wrapping core.ErrDatasetNotFound for
// unknown ids.
type DatasetRepository interface {
	Create(ctx context.Context, ds *dataset.StoredDataset) error
	GetByID(ctx context.Context, id core.ID) (*dataset.StoredDataset, error)
	// List returns summaries, newest first. A limit of zero or less means no
	// limit; a negative offset is treated as zero.
	List(ctx context.Context, limit, offset int) ([]dataset.Summary, error)
	Delete(ctx context.Context, id core.ID) error
}
