// Package memory holds in-process repository implementations used when no
// database is configured, and by tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/ports"
)

// DatasetRepository keeps datasets in a map guarded by a RWMutex
type DatasetRepository struct {
	mu       sync.RWMutex
	datasets map[core.ID]*dataset.StoredDataset
}

// NewDatasetRepository creates an empty repository
func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{datasets: make(map[core.ID]*dataset.StoredDataset)}
}

var _ ports.DatasetRepository = (*DatasetRepository)(nil)

// Create stores ds. The id must be unused.
func (r *DatasetRepository) Create(ctx context.Context, ds *dataset.StoredDataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ds == nil || ds.ID.IsEmpty() {
		return fmt.Errorf("failed to create dataset: missing id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[ds.ID]; exists {
		return fmt.Errorf("failed to create dataset: id %s already exists", ds.ID)
	}
	copied := *ds
	r.datasets[ds.ID] = &copied
	return nil
}

// GetByID returns a copy of the stored dataset. Rows are shared and must be
// treated as read-only.
func (r *DatasetRepository) GetByID(ctx context.Context, id core.ID) (*dataset.StoredDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, ok := r.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	copied := *ds
	return &copied, nil
}

// List returns summaries, newest first
func (r *DatasetRepository) List(ctx context.Context, limit, offset int) ([]dataset.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	all := make([]*dataset.StoredDataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		all = append(all, ds)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []dataset.Summary{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}

	summaries := make([]dataset.Summary, 0, len(all))
	for _, ds := range all {
		summaries = append(summaries, ds.Summary())
	}
	return summaries, nil
}

// Delete removes the dataset with id
func (r *DatasetRepository) Delete(ctx context.Context, id core.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	delete(r.datasets, id)
	return nil
}

// Len returns how many datasets are stored
func (r *DatasetRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}
