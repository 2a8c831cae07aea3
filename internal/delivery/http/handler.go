package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/xlsx"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	noMatchesMessage = "No matches found in the selected range."
)

// Upload form fields
const (
	fieldBenchDemand = "bench_demand"
	fieldSubcon      = "subcon"
	fieldMaster      = "master_skill"
)

// MatchingUsecase is the application logic behind the handlers
type MatchingUsecase interface {
	CreateDataset(ctx context.Context, sources domain.WorkbookSources) (*domain.Dataset, error)
	GetDataset(ctx context.Context, id string) (*domain.Dataset, error)
	DeleteDataset(ctx context.Context, id string) error
	BenchView(ctx context.Context, id string, filter domain.BenchFilter) (*domain.BenchView, error)
	Match(ctx context.Context, request *domain.MatchRequest) (*domain.Report, error)
}

// HandlerOptions holds request defaults for the handlers
type HandlerOptions struct {
	DefaultRange   domain.PercentRange
	MaxUploadBytes int64
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matching     MatchingUsecase
	exporter     domain.ReportExporter
	defaultRange domain.PercentRange
	maxUpload    int64
}

// NewHandler creates a new HTTP handler
func NewHandler(matching MatchingUsecase, exporter domain.ReportExporter, opts HandlerOptions) *Handler {
	if opts.DefaultRange == (domain.PercentRange{}) {
		opts.DefaultRange = domain.FullRange
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &Handler{
		matching:     matching,
		exporter:     exporter,
		defaultRange: opts.DefaultRange,
		maxUpload:    opts.MaxUploadBytes,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skillmatch-backend",
		"version": "1.0.0",
	})
}

// CreateDataset handles upload of the three workbooks
func (h *Handler) CreateDataset(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart form upload"})
		return
	}

	var sources domain.WorkbookSources
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, field := range []string{fieldBenchDemand, fieldSubcon, fieldMaster} {
		header, err := c.FormFile(field)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing workbook upload: " + field})
			return
		}
		if err := xlsx.ValidateFileName(header.Filename); err != nil {
			respondError(c, err)
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload: " + field})
			return
		}
		opened = append(opened, f)

		switch field {
		case fieldBenchDemand:
			sources.BenchDemand = f
		case fieldSubcon:
			sources.Subcon = f
		case fieldMaster:
			sources.Master = f
		}
	}

	dataset, err := h.matching.CreateDataset(c.Request.Context(), sources)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"datasetId": dataset.ID,
		"createdAt": dataset.CreatedAt,
		"counts":    dataset.Counts(),
	})
}

// GetDataset returns the row counts of an uploaded dataset
func (h *Handler) GetDataset(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	dataset, err := h.matching.GetDataset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"datasetId": dataset.ID,
		"createdAt": dataset.CreatedAt,
		"counts":    dataset.Counts(),
	})
}

// DeleteDataset discards an uploaded dataset
func (h *Handler) DeleteDataset(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	if err := h.matching.DeleteDataset(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BenchView returns the filtered bench pool, dropdown options and extracted skills
func (h *Handler) BenchView(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var filter domain.BenchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.matching.BenchView(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// matchRequest is the JSON body of a matching request
type matchRequest struct {
	Practice      []string `json:"practice"`
	SubPractice   []string `json:"subPractice"`
	Grade         []string `json:"grade"`
	SkillGrouping []string `json:"skillGrouping"`
	Name          string   `json:"name"`
	Skill         string   `json:"skill"`
	MinPercent    *int     `json:"minPercent" binding:"omitempty,min=0,max=100"`
	MaxPercent    *int     `json:"maxPercent" binding:"omitempty,min=0,max=100"`
}

// toDomain builds the immutable matching request
func (r matchRequest) toDomain(datasetID string, mode domain.Mode, defaults domain.PercentRange) *domain.MatchRequest {
	rng := defaults
	if r.MinPercent != nil {
		rng.Min = *r.MinPercent
	}
	if r.MaxPercent != nil {
		rng.Max = *r.MaxPercent
	}
	return &domain.MatchRequest{
		DatasetID: datasetID,
		Mode:      mode,
		Filter: domain.BenchFilter{
			Practices:      r.Practice,
			SubPractices:   r.SubPractice,
			Grades:         r.Grade,
			SkillGroupings: r.SkillGrouping,
			NamePrefix:     r.Name,
			SkillContains:  r.Skill,
		},
		Range: rng,
	}
}

// Match runs demand or sub-con matching for an uploaded dataset.
// With ?format=xlsx a non-empty report is returned as a workbook download.
func (h *Handler) Match(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	mode, err := domain.ParseMode(c.Param("mode"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body matchRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.matching.Match(c.Request.Context(), body.toDomain(c.Param("id"), mode, h.defaultRange))
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "xlsx" && !report.Empty() && h.exporter != nil {
		var buf bytes.Buffer
		if err := h.exporter.Export(report, &buf); err != nil {
			log.Printf("[HTTP] export failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+xlsx.FileName(mode)+`"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
		return
	}

	warnings := report.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	response := gin.H{
		"mode":     report.Mode,
		"range":    report.Range,
		"count":    len(report.Results),
		"results":  report.Results,
		"warnings": warnings,
	}
	if report.Empty() {
		response["message"] = noMatchesMessage
	}
	c.JSON(http.StatusOK, response)
}

// configured reports whether the handler has a matching usecase and writes 501 otherwise
func (h *Handler) configured(c *gin.Context) bool {
	if h.matching == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "matching service not configured"})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrUnsupportedFile):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDatasetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrMissingSheet),
		errors.Is(err, domain.ErrMissingColumn),
		errors.Is(err, domain.ErrInvalidWorkbook):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
