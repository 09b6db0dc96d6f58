package tui

import (
	"log/slog"

	"postboard/internal/client"
	"postboard/internal/notifications"
)

type Deps struct {
	Store *client.Store
	// Events carries post events from other clients. Optional.
	Events <-chan notifications.PostEvent

	Logger *slog.Logger
}
