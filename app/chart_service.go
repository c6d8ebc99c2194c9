package app

import (
	"context"
	"fmt"
	"time"

	"chartlab/domain/chart"
	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/internal"
	"chartlab/internal/charts"
	"chartlab/internal/config"
	ingest "chartlab/internal/dataset"
	"chartlab/internal/errors"
	"chartlab/internal/metrics"
	"chartlab/internal/profiling"
	"chartlab/internal/report"
	"chartlab/ports"

	"golang.org/x/sync/errgroup"
)

// Report formats
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ChartService orchestrates uploads, analysis and chart preparation
type ChartService struct {
	repository ports.DatasetRepository
	processor  *ingest.Processor
	config     config.ChartsConfig
	metrics    *metrics.Recorder
	logger     *internal.Logger
}

// DatasetView is a dataset summary with its first rows
type DatasetView struct {
	dataset.Summary
	Preview []dataset.Row `json:"preview"`
}

// PreparedChart is a normalized spec with its renderer-ready records
type PreparedChart struct {
	Spec    chart.Spec     `json:"spec"`
	Kind    chart.Kind     `json:"kind"`
	Caption string         `json:"caption"`
	Records []chart.Record `json:"records"`
}

// BatchItem is one entry of a batch preparation. Exactly one of Chart and
// Error is set.
type BatchItem struct {
	Chart *PreparedChart `json:"chart,omitempty"`
	Error string         `json:"error,omitempty"`
	Code  string         `json:"code,omitempty"`
}

// NewChartService creates a chart service
func NewChartService(repository ports.DatasetRepository, processor *ingest.Processor, cfg config.ChartsConfig, recorder *metrics.Recorder, logger *internal.Logger) *ChartService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	if cfg.MaxBatch < 1 {
		cfg.MaxBatch = 1
	}
	return &ChartService{
		repository: repository,
		processor:  processor,
		config:     cfg,
		metrics:    recorder,
		logger:     logger,
	}
}

// Upload parses and stores a file
func (s *ChartService) Upload(ctx context.Context, upload *dataset.Upload) (*dataset.StoredDataset, error) {
	return s.processor.ProcessUpload(ctx, upload)
}

// Get loads a stored dataset
func (s *ChartService) Get(ctx context.Context, id core.ID) (*dataset.StoredDataset, error) {
	ds, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.WithCode(errors.CodeNotFound, err)
		}
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to load dataset %s", id))
	}
	return ds, nil
}

// View returns the summary and the preview rows of a dataset
func (s *ChartService) View(ctx context.Context, id core.ID) (*DatasetView, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DatasetView{
		Summary: ds.Summary(),
		Preview: ds.Data.Head(s.config.PreviewRows).Rows,
	}, nil
}

// List returns dataset summaries, newest first
func (s *ChartService) List(ctx context.Context, limit, offset int) ([]dataset.Summary, error) {
	summaries, err := s.repository.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to list datasets"))
	}
	return summaries, nil
}

// Delete removes a dataset
func (s *ChartService) Delete(ctx context.Context, id core.ID) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		if core.IsNotFoundError(err) {
			return errors.WithCode(errors.CodeNotFound, err)
		}
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to delete dataset %s", id))
	}
	s.logger.Info("[ChartService] Deleted dataset %s", id)
	return nil
}

// Analyze profiles a stored dataset
func (s *ChartService) Analyze(ctx context.Context, id core.ID) (*dataset.Report, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeData(ds.Data), nil
}

// AnalyzeData profiles rows that were never stored. The report is nil for an
// empty dataset.
func (s *ChartService) AnalyzeData(data dataset.Dataset) *dataset.Report {
	s.metrics.Analysis()
	return profiling.Analyze(data)
}

// Report renders the analysis of a stored dataset as markdown or HTML and
// returns the body with its content type
func (s *ChartService) Report(ctx context.Context, id core.ID, format string) ([]byte, string, error) {
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return nil, "", errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
	}

	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	analysis := s.AnalyzeData(ds.Data)

	formatter := report.MarkdownFormatter{Title: "Data Analysis: " + ds.GetDisplayName()}
	if format == FormatHTML {
		return formatter.HTML(analysis), "text/html; charset=utf-8", nil
	}
	return formatter.Format(analysis), "text/markdown; charset=utf-8", nil
}

// Prepare builds chart records for a stored dataset
func (s *ChartService) Prepare(ctx context.Context, id core.ID, spec chart.Spec) (*PreparedChart, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.PrepareData(ds.Data, spec)
}

// PrepareData normalizes spec and builds its records. Unknown chart kinds
// fail with CodeUnsupportedChart.
func (s *ChartService) PrepareData(data dataset.Dataset, spec chart.Spec) (*PreparedChart, error) {
	spec = spec.Normalize()

	start := time.Now()
	result := charts.Prepare(data, spec)
	s.metrics.Prepare(string(spec.Type), result.Supported, len(result.Records), time.Since(start))

	if !result.Supported {
		return nil, &errors.AppError{
			Code:    errors.CodeUnsupportedChart,
			Message: fmt.Sprintf("chart type %q", spec.Type),
			Cause:   core.ErrUnsupportedChart,
		}
	}

	s.logger.Debug("[ChartService] Prepared %s chart on %s/%s: %d records",
		spec.Type, spec.XColumn, spec.YColumn, len(result.Records))
	return &PreparedChart{
		Spec:    spec,
		Kind:    result.Kind,
		Caption: spec.Caption(),
		Records: result.Records,
	}, nil
}

// PrepareBatch prepares several charts against one dataset concurrently.
// Failures are reported per item; the call only fails when the dataset
// cannot be loaded, the batch is malformed or ctx ends.
func (s *ChartService) PrepareBatch(ctx context.Context, id core.ID, specs []chart.Spec) ([]BatchItem, error) {
	if len(specs) == 0 {
		return nil, errors.InvalidInput("at least one chart spec is required")
	}
	if len(specs) > s.config.MaxBatch {
		return nil, errors.InvalidInput(fmt.Sprintf("at most %d chart specs per batch", s.config.MaxBatch))
	}

	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.BatchConcurrency)

	for i, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			prepared, err := s.PrepareData(ds.Data, spec)
			if err != nil {
				items[i] = BatchItem{Error: err.Error(), Code: errors.GetCode(err)}
				return nil
			}
			items[i] = BatchItem{Chart: prepared}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
