package dataset

import (
	"io"
	"time"

	"chartlab/domain/core"
)

// Source identifies where a stored dataset came from
type Source string

const (
	SourceUpload Source = "upload"
	SourceInline Source = "inline"
	SourceCLI    Source = "cli"
)

// StoredDataset is an uploaded table kept in the dataset repository
type StoredDataset struct {
	ID core.ID `json:"id"`

	// File information
	Filename string `json:"filename"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
	Source   Source `json:"source"`

	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`

	Data Dataset `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the listing view of a stored dataset, without rows
type Summary struct {
	ID          core.ID   `json:"id"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Source      Source    `json:"source"`
	Headers     []string  `json:"headers"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Upload represents an uploaded file before parsing. Size is the declared
// length, zero when unknown.
type Upload struct {
	Filename string
	File     io.Reader
	Size     int64
	MimeType string
	Source   Source
}

// NewStoredDataset wraps a parsed table with a fresh id and timestamps
func NewStoredDataset(filename string, data Dataset) *StoredDataset {
	now := time.Now().UTC()
	return &StoredDataset{
		ID:          core.NewID(),
		Filename:    filename,
		Source:      SourceUpload,
		RowCount:    data.Len(),
		ColumnCount: len(data.ColumnNames()),
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Summary drops the rows
func (d *StoredDataset) Summary() Summary {
	return Summary{
		ID:          d.ID,
		Filename:    d.Filename,
		FileSize:    d.FileSize,
		MimeType:    d.MimeType,
		Source:      d.Source,
		Headers:     d.Data.ColumnNames(),
		RowCount:    d.RowCount,
		ColumnCount: d.ColumnCount,
		CreatedAt:   d.CreatedAt,
	}
}

// GetDisplayName returns the filename or the id for datasets without one
func (d *StoredDataset) GetDisplayName() string {
	if d.Filename != "" {
		return d.Filename
	}
	return d.ID.String()
}
