package dataset

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chartlab/adapters/memory"
	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/internal"
	"chartlab/internal/config"
	"chartlab/internal/errors"
	"chartlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uploadConfig() config.UploadConfig {
	return config.UploadConfig{MaxBytes: 1024, Extensions: []string{".csv", ".xlsx"}}
}

func csvUpload(name, body string) *dataset.Upload {
	return &dataset.Upload{Filename: name, File: strings.NewReader(body), Size: int64(len(body))}
}

func TestProcessUpload_StoresDataset(t *testing.T) {
	repo := memory.NewDatasetRepository()
	p := NewProcessor(repo, nil, uploadConfig(), nil, internal.Discard)

	stored, err := p.ProcessUpload(context.Background(), csvUpload("sales.csv", "month,sales\nJan,10\nFeb,N/A\n"))
	require.NoError(t, err)

	assert.False(t, stored.ID.IsEmpty())
	assert.Equal(t, "sales.csv", stored.Filename)
	assert.Equal(t, "text/csv", stored.MimeType)
	assert.Equal(t, dataset.SourceUpload, stored.Source)
	assert.Equal(t, 2, stored.RowCount)
	assert.Equal(t, 2, stored.ColumnCount)
	assert.EqualValues(t, len("month,sales\nJan,10\nFeb,N/A\n"), stored.FileSize)

	got, err := repo.GetByID(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.NewNumber(10), got.Data.Rows[0].Get("sales"))
}

func TestProcessUpload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		upload   *dataset.Upload
		code     string
		sentinel error
	}{
		{"unknown extension", csvUpload("notes.txt", "a\n1\n"), errors.CodeUnsupportedFile, core.ErrUnsupportedFile},
		{"declared too large", &dataset.Upload{Filename: "big.csv", File: strings.NewReader("a\n1\n"), Size: 4096}, errors.CodeFileTooLarge, core.ErrFileTooLarge},
		{"streamed too large", &dataset.Upload{Filename: "big.csv", File: strings.NewReader("a\n" + strings.Repeat("1\n", 600))}, errors.CodeFileTooLarge, core.ErrFileTooLarge},
		{"header only", csvUpload("empty.csv", "a,b\n"), errors.CodeInvalidInput, core.ErrNoDataRows},
		{"missing name", csvUpload("  ", "a\n1\n"), errors.CodeInvalidInput, nil},
		{"no file", &dataset.Upload{Filename: "x.csv"}, errors.CodeInvalidInput, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewDatasetRepository()
			p := NewProcessor(repo, nil, uploadConfig(), nil, internal.Discard)

			_, err := p.ProcessUpload(context.Background(), tt.upload)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
				assert.True(t, core.IsUploadError(err))
			}
			assert.Equal(t, 0, repo.Len())
		})
	}
}

func TestProcessUpload_ExtensionNotAllowed(t *testing.T) {
	cfg := uploadConfig()
	cfg.Extensions = []string{".csv"}
	p := NewProcessor(memory.NewDatasetRepository(), nil, cfg, nil, internal.Discard)

	_, err := p.ProcessUpload(context.Background(), csvUpload("book.xlsx", "irrelevant"))
	assert.ErrorIs(t, err, core.ErrUnsupportedFile)
}

func TestProcessUpload_Archives(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(memory.NewDatasetRepository(), NewLocalFileStorage(dir), uploadConfig(), nil, internal.Discard)

	_, err := p.ProcessUpload(context.Background(), csvUpload("sales.csv", "a\n1\n"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "sales_"))
	assert.Equal(t, ".csv", filepath.Ext(entries[0].Name()))
}

func TestProcessUpload_SaveFailureRemovesArchive(t *testing.T) {
	dir := t.TempDir()
	repo := &testkit.MockDatasetRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(stderrors.New("connection refused"))

	p := NewProcessor(repo, NewLocalFileStorage(dir), uploadConfig(), nil, internal.Discard)
	_, err := p.ProcessUpload(context.Background(), csvUpload("sales.csv", "a\n1\n"))

	require.Error(t, err)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
	repo.AssertExpectations(t)
}

func TestProcessFile(t *testing.T) {
	gen := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig())
	body := gen.CSV()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg := uploadConfig()
	cfg.MaxBytes = int64(len(body)) + 1
	p := NewProcessor(memory.NewDatasetRepository(), nil, cfg, nil, internal.Discard)

	stored, err := p.ProcessFile(context.Background(), path, dataset.SourceCLI)
	require.NoError(t, err)
	assert.Equal(t, dataset.SourceCLI, stored.Source)
	assert.Equal(t, 200, stored.RowCount)
	assert.Equal(t, testkit.SalesHeaders, stored.Data.Headers)

	_, err = p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), dataset.SourceCLI)
	assert.Error(t, err)
}

func TestLocalFileStorage(t *testing.T) {
	s := NewLocalFileStorage(filepath.Join(t.TempDir(), "archive"))
	ctx := context.Background()

	path, err := s.Store(ctx, bytes.NewReader([]byte("x\n1\n")), "../weird name.csv")
	require.NoError(t, err)
	assert.Equal(t, s.BasePath(), filepath.Dir(path))

	ok, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path), "deleting twice is fine")

	ok, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)
}
