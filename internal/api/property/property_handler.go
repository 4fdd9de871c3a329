package property

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-estate-assistant/app/observability/metrics"
	"github.com/FACorreiaa/go-estate-assistant/internal/api"
	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

type Handler struct {
	propertyService Service
	logger          *slog.Logger
}

func NewHandler(propertyService Service, logger *slog.Logger) *Handler {
	return &Handler{
		propertyService: propertyService,
		logger:          logger,
	}
}

// HandlePropertySearch serves POST /api/properties. An unresolvable
// location is a 200 with an error field; only internal failures are 500s.
// Either way the body carries the documented shape.
func (h *Handler) HandlePropertySearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PropertyHandler").Start(r.Context(), "HandlePropertySearch", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/properties"),
	))
	defer span.End()

	start := time.Now()
	l := h.logger.With(slog.String("handler", "HandlePropertySearch"))

	var req types.PropertySearchRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusBadRequest, types.PropertySearchResponse{
			Error:      "Invalid request body",
			Properties: []types.PropertyListing{},
		})
		return
	}

	filter := types.ListingFilter(req.Type)
	if filter == "" {
		filter = types.FilterAll
	}

	resp, err := h.propertyService.Search(ctx, req.Location, filter)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Get().PropertyRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	metrics.Get().RequestDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("route", "/api/properties")))

	if err != nil {
		l.ErrorContext(ctx, "Failed to search properties", slog.Any("error", err))
		span.RecordError(err)
		api.WriteJSONResponse(w, r, http.StatusInternalServerError, types.PropertySearchResponse{
			Error:      "Failed to fetch properties",
			Properties: []types.PropertyListing{},
		})
		return
	}

	l.InfoContext(ctx, "Property search completed",
		slog.String("location", req.Location),
		slog.Int("properties", len(resp.Properties)))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
