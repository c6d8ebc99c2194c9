// Package dataset turns uploaded spreadsheet files into stored datasets.
//
// ProcessUpload validates the file against the upload limits, optionally
// archives the raw bytes through a FileStorage, parses it with the excel
// adapter and saves the result in the dataset repository.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chartlab/adapters/excel"
	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/internal"
	"chartlab/internal/config"
	"chartlab/internal/errors"
	"chartlab/internal/metrics"
	"chartlab/ports"
)

// Processor handles dataset file processing
type Processor struct {
	repository  ports.DatasetRepository
	fileStorage FileStorage
	config      config.UploadConfig
	metrics     *metrics.Recorder
	logger      *internal.Logger
}

// NewProcessor creates a new dataset processor. fileStorage may be nil, in
// which case uploads are not archived.
func NewProcessor(repository ports.DatasetRepository, fileStorage FileStorage, cfg config.UploadConfig, recorder *metrics.Recorder, logger *internal.Logger) *Processor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Processor{
		repository:  repository,
		fileStorage: fileStorage,
		config:      cfg,
		metrics:     recorder,
		logger:      logger,
	}
}

// ProcessUpload parses and stores an uploaded file
func (p *Processor) ProcessUpload(ctx context.Context, upload *dataset.Upload) (*dataset.StoredDataset, error) {
	stored, err := p.processUpload(ctx, upload)
	if err != nil {
		p.metrics.Upload(false, 0)
		return nil, err
	}
	p.metrics.Upload(true, stored.RowCount)
	return stored, nil
}

// ProcessFile reads a file from disk and stores it as a dataset
func (p *Processor) ProcessFile(ctx context.Context, path string, source dataset.Source) (*dataset.StoredDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	return p.ProcessUpload(ctx, &dataset.Upload{
		Filename: filepath.Base(path),
		File:     f,
		Size:     size,
		Source:   source,
	})
}

func (p *Processor) processUpload(ctx context.Context, upload *dataset.Upload) (*dataset.StoredDataset, error) {
	if upload == nil || upload.File == nil {
		return nil, errors.InvalidInput("no file provided")
	}
	if err := p.validateUpload(upload); err != nil {
		p.logger.Warn("[DatasetProcessor] Rejected upload %q: %v", upload.Filename, err)
		return nil, err
	}

	content, err := p.readLimited(upload.File)
	if err != nil {
		return nil, err
	}

	fileType, _ := excel.DetectFileType(upload.Filename)
	data, err := excel.NewDataReader(upload.Filename).WithLogger(p.logger).ReadFrom(bytes.NewReader(content))
	if err != nil {
		p.logger.Warn("[DatasetProcessor] Failed to parse %q: %v", upload.Filename, err)
		return nil, errors.UploadRejected(errors.CodeInvalidInput, err)
	}

	stored := dataset.NewStoredDataset(upload.Filename, data)
	stored.FileSize = int64(len(content))
	stored.MimeType = fileType.MimeType()
	if upload.Source != "" {
		stored.Source = upload.Source
	}

	archived := ""
	if p.fileStorage != nil {
		archived, err = p.fileStorage.Store(ctx, bytes.NewReader(content), upload.Filename)
		if err != nil {
			return nil, errors.Wrap(err, "failed to archive upload")
		}
		p.logger.Debug("[DatasetProcessor] Archived %q to %s", upload.Filename, archived)
	}

	if err := p.repository.Create(ctx, stored); err != nil {
		if archived != "" {
			if delErr := p.fileStorage.Delete(ctx, archived); delErr != nil {
				p.logger.Warn("[DatasetProcessor] Failed to remove archived file %s: %v", archived, delErr)
			}
		}
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to save dataset"))
	}

	p.logger.Info("[DatasetProcessor] Stored dataset %s (%s) with %d columns and %d rows",
		stored.ID, stored.Filename, stored.ColumnCount, stored.RowCount)
	return stored, nil
}

// validateUpload checks the name, extension and declared size
func (p *Processor) validateUpload(upload *dataset.Upload) error {
	if strings.TrimSpace(upload.Filename) == "" {
		return errors.InvalidInput("file name is required")
	}
	if err := p.validateFileExtension(upload.Filename); err != nil {
		return err
	}
	if upload.Size > p.config.MaxBytes {
		return p.tooLarge(upload.Size)
	}
	return nil
}

func (p *Processor) validateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, err := excel.DetectFileType(filename); err != nil {
		return errors.UploadRejected(errors.CodeUnsupportedFile, err)
	}
	for _, allowed := range p.config.Extensions {
		if strings.EqualFold(strings.TrimSpace(allowed), ext) {
			return nil
		}
	}
	return errors.UploadRejected(errors.CodeUnsupportedFile, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, ext))
}

// readLimited buffers the upload, failing once it grows past MaxBytes
func (p *Processor) readLimited(src io.Reader) ([]byte, error) {
	start := time.Now()
	content, err := io.ReadAll(io.LimitReader(src, p.config.MaxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if int64(len(content)) > p.config.MaxBytes {
		return nil, p.tooLarge(int64(len(content)))
	}
	p.logger.Trace("[DatasetProcessor] Read %d bytes in %s", len(content), time.Since(start))
	return content, nil
}

func (p *Processor) tooLarge(size int64) error {
	return errors.UploadRejected(errors.CodeFileTooLarge,
		fmt.Errorf("%w: %d bytes (limit %d)", core.ErrFileTooLarge, size, p.config.MaxBytes))
}
