package ui

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/internal/errors"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and part headers around the file
const multipartOverhead = 64 * 1024

// handleFileUpload stores a CSV or XLSX file sent as the multipart field "file"
func (s *Server) handleFileUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.upload.MaxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.respondError(c, errors.UploadRejected(errors.CodeFileTooLarge,
				fmt.Errorf("%w: limit %d bytes", core.ErrFileTooLarge, s.upload.MaxBytes)))
			return
		}
		s.respondError(c, errors.InvalidInput("no file uploaded in field \"file\""))
		return
	}
	defer file.Close()

	stored, err := s.service.Upload(c.Request.Context(), &dataset.Upload{
		Filename: header.Filename,
		File:     file,
		Size:     header.Size,
		MimeType: header.Header.Get("Content-Type"),
		Source:   dataset.SourceUpload,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stored.Summary())
}

// handleListDatasets lists summaries, newest first
func (s *Server) handleListDatasets(c *gin.Context) {
	limit := queryInt(c, "limit", 50, 1, 200)
	offset := queryInt(c, "offset", 0, 0, 0)

	summaries, err := s.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"datasets": summaries,
		"count":    len(summaries),
		"limit":    limit,
		"offset":   offset,
	})
}

// handleGetDataset returns the summary and preview rows
func (s *Server) handleGetDataset(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	view, err := s.service.View(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	if err := s.service.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
