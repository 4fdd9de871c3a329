package chat

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

const internalErrorReply = "I'm sorry, I encountered an error processing your request. Please try again."

type Handler struct {
	chatService Service
	logger      *slog.Logger
}

func NewHandler(chatService Service, logger *slog.Logger) *Handler {
	return &Handler{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleChatMessage serves POST /api/chat. Every outcome, including
// failure, is a ChatResponse so the frontend never sees an undefined
// body shape.
func (h *Handler) HandleChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "HandleChatMessage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/chat"),
	))
	defer span.End()

	start := time.Now()
	l := h.logger.With(slog.String("handler", "HandleChatMessage"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusBadRequest, types.ChatResponse{
			Reply:  internalErrorReply,
			Places: []types.Place{},
		})
		return
	}

	resp, err := h.chatService.ProcessMessage(ctx, req.Message)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Get().ChatRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	metrics.Get().RequestDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("route", "/api/chat")))

	if err != nil {
		l.ErrorContext(ctx, "Failed to process chat message", slog.Any("error", err))
		span.RecordError(err)
		api.WriteJSONResponse(w, r, http.StatusInternalServerError, types.ChatResponse{
			Reply:  internalErrorReply,
			Places: []types.Place{},
		})
		return
	}

	l.InfoContext(ctx, "Chat message processed", slog.Int("places", len(resp.Places)))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
