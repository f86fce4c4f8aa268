package handler

import (
	"net/http"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// filterFromRequest reads the global filter from the query string. When both
// bounds are absent the window defaults to the current calendar month, the
// view the dashboard opens with. A single bound leaves the window open on
// that side.
func filterFromRequest(r *http.Request) service.Filter {
	q := r.URL.Query()
	f := service.Filter{
		Start: q.Get("start"),
		End:   q.Get("end"),
		Query: q.Get("q"),
	}
	if f.Start == "" && f.End == "" {
		f.Start, f.End = service.DefaultMonthRange(time.Now())
	}
	return f
}

func dashboardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		f := filterFromRequest(r)
		span.SetAttributes(
			attribute.String("filter.start", f.Start),
			attribute.String("filter.end", f.End),
		)

		view, err := svc.GetDashboard(ctx, f)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}
