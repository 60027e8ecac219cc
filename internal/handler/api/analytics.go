package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/handler"
	"github.com/dukerupert/storefront/internal/service"
)

// DefaultReportWindow is used when the caller gives no range.
const DefaultReportWindow = 30 * 24 * time.Hour

// AbandonmentReporter computes abandoned-cart statistics.
type AbandonmentReporter interface {
	AbandonedCarts(ctx context.Context, start, end time.Time) (*service.AbandonmentReport, error)
}

type AnalyticsHandler struct {
	reports AbandonmentReporter
	now     func() time.Time
}

func NewAnalyticsHandler(reports AbandonmentReporter) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports, now: time.Now}
}

// AbandonedCarts handles GET /api/analytics/abandoned-carts?start=&end=
// Both bounds are RFC 3339; end defaults to now and start to 30 days earlier.
func (h *AnalyticsHandler) AbandonedCarts(w http.ResponseWriter, r *http.Request) {
	const op = "api.analytics.abandoned_carts"

	end := h.now()
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			handler.ErrorResponse(w, r, domain.NewValidationError(op, "end", "end must be an RFC 3339 timestamp"))
			return
		}
		end = t
	}

	start := end.Add(-DefaultReportWindow)
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			handler.ErrorResponse(w, r, domain.NewValidationError(op, "start", "start must be an RFC 3339 timestamp"))
			return
		}
		start = t
	}

	report, err := h.reports.AbandonedCarts(r.Context(), start, end)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, report)
}
