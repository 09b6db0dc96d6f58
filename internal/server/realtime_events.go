package server

import (
	"context"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/observability"
)

// publishPostEvent is best effort: a Redis failure never fails the request.
func (s *Server) publishPostEvent(ctx context.Context, eventType string, post models.PostPrimitive) {
	if !s.notifier.Enabled() {
		return
	}
	if err := s.notifier.PublishPostEvent(context.WithoutCancel(ctx), eventType, post); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish post event",
			slog.String("type", eventType),
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	observability.PostEventsPublished.WithLabelValues(eventType).Inc()
}
