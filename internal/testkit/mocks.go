package testkit

import (
	"context"

	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/ports"

	"github.com/stretchr/testify/mock"
)

// MockDatasetRepository is a mock for the DatasetRepository port
type MockDatasetRepository struct {
	mock.Mock
}

var _ ports.DatasetRepository = (*MockDatasetRepository)(nil)

func (m *MockDatasetRepository) Create(ctx context.Context, ds *dataset.StoredDataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *MockDatasetRepository) GetByID(ctx context.Context, id core.ID) (*dataset.StoredDataset, error) {
	args := m.Called(ctx, id)
	if ds, ok := args.Get(0).(*dataset.StoredDataset); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatasetRepository) List(ctx context.Context, limit, offset int) ([]dataset.Summary, error) {
	args := m.Called(ctx, limit, offset)
	if summaries, ok := args.Get(0).([]dataset.Summary); ok {
		return summaries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatasetRepository) Delete(ctx context.Context, id core.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
