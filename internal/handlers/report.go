package handlers

import (
	"context"
	"net/http"
	"time"

	"funews/internal/models"
	"funews/internal/respond"
)

// ReportService is the reporting surface used by Reports.
type ReportService interface {
	Statistics(ctx context.Context, from, to time.Time) (*models.NewsStatistics, error)
	NewsByStaff(ctx context.Context, from, to time.Time) ([]models.StaffDayReport, error)
	NewsByCategory(ctx context.Context, from, to time.Time) ([]models.CategoryReport, error)
	TopAuthors(ctx context.Context, from, to time.Time) ([]models.AuthorDayReport, error)
}

// Reports serves /api/report. Every route takes startDate and endDate.
type Reports struct {
	svc ReportService
}

// NewReports creates the reports handlers.
func NewReports(svc ReportService) *Reports {
	return &Reports{svc: svc}
}

// serveReport parses the date range, runs fn and writes its result.
func serveReport[T any](w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, from, to time.Time) (T, error)) {
	from, to, ok := dateRange(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidDates)
		return
	}
	out, err := fn(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err, action)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// Statistics handles GET /api/report/statistics.
func (h *Reports) Statistics(w http.ResponseWriter, r *http.Request) {
	serveReport(w, r, "getting statistics", h.svc.Statistics)
}

// NewsByStaff handles GET /api/report/news-by-staff.
func (h *Reports) NewsByStaff(w http.ResponseWriter, r *http.Request) {
	serveReport(w, r, "getting report", h.svc.NewsByStaff)
}

// NewsByCategory handles GET /api/report/news-by-category.
func (h *Reports) NewsByCategory(w http.ResponseWriter, r *http.Request) {
	serveReport(w, r, "getting report", h.svc.NewsByCategory)
}

// TopAuthors handles GET /api/report/top-authors.
func (h *Reports) TopAuthors(w http.ResponseWriter, r *http.Request) {
	serveReport(w, r, "getting report", h.svc.TopAuthors)
}
