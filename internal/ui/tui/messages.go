package tui

import (
	"postboard/internal/models"
	"postboard/internal/notifications"
)

type postsLoadedMsg struct {
	err error
}

type postCreatedMsg struct {
	post models.PostPrimitive
	err  error
}

type postDeletedMsg struct {
	post models.PostPrimitive
	err  error
}

type postEventMsg struct {
	event notifications.PostEvent
}
