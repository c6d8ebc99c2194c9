package ui

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"chartlab/domain/chart"
	"chartlab/domain/dataset"
	"chartlab/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type batchRequest struct {
	Specs []chart.Spec `json:"specs"`
}

type inlineAnalyzeRequest struct {
	Rows []json.RawMessage `json:"rows"`
}

type inlinePrepareRequest struct {
	Rows []json.RawMessage `json:"rows"`
	Spec chart.Spec        `json:"spec"`
}

// handleAnalysis returns the column profile report of a stored dataset
func (s *Server) handleAnalysis(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	report, err := s.service.Analyze(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleReport renders the analysis as markdown, or HTML with ?format=html
func (s *Server) handleReport(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	body, contentType, err := s.service.Report(c.Request.Context(), id, strings.ToLower(c.Query("format")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}

func (s *Server) handlePrepareChart(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	var spec chart.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		s.respondError(c, errors.InvalidInput("invalid chart spec: "+err.Error()))
		return
	}
	if err := s.validateSpec(spec); err != nil {
		s.respondError(c, err)
		return
	}

	prepared, err := s.service.Prepare(c.Request.Context(), id, spec)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prepared)
}

// handlePrepareBatch prepares several charts of one dataset. Unsupported
// kinds are reported per item.
func (s *Server) handlePrepareBatch(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid batch request: "+err.Error()))
		return
	}
	for i, spec := range req.Specs {
		if err := s.validateSpec(spec); err != nil {
			s.respondError(c, errors.Wrapf(err, "specs[%d]", i))
			return
		}
	}

	items, err := s.service.PrepareBatch(c.Request.Context(), id, req.Specs)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}

// handleAnalyzeInline profiles rows posted as JSON objects without storing
// them. An empty row list yields a null report.
func (s *Server) handleAnalyzeInline(c *gin.Context) {
	var req inlineAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request: "+err.Error()))
		return
	}

	data, err := dataset.FromRawRows(req.Rows)
	if err != nil {
		s.respondError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	c.JSON(http.StatusOK, s.service.AnalyzeData(data))
}

func (s *Server) handlePrepareInline(c *gin.Context) {
	var req inlinePrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request: "+err.Error()))
		return
	}
	if err := s.validateSpec(req.Spec); err != nil {
		s.respondError(c, err)
		return
	}

	data, err := dataset.FromRawRows(req.Rows)
	if err != nil {
		s.respondError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	prepared, err := s.service.PrepareData(data, req.Spec)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prepared)
}

func (s *Server) handleChartKinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": chart.Kinds()})
}

// validateSpec checks the spec shape. Chart kinds are not checked here; an
// unknown kind is answered with 422 by the service.
func (s *Server) validateSpec(spec chart.Spec) error {
	err := s.validate.Struct(spec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.WithCode(errors.CodeValidationError, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return errors.ValidationError("invalid chart spec: " + strings.Join(problems, ", "))
}

// jsonFieldName reports struct fields by their JSON name in validation errors
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
