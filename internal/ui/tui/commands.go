package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"postboard/internal/client"
	"postboard/internal/notifications"
	"postboard/internal/validation"
)

func cmdFetchPosts(store *client.Store) tea.Cmd {
	return func() tea.Msg {
		return postsLoadedMsg{err: store.FetchPosts(context.Background())}
	}
}

func cmdCreatePost(store *client.Store, in validation.CreatePostRequest) tea.Cmd {
	return func() tea.Msg {
		post, err := store.CreatePost(context.Background(), in)
		return postCreatedMsg{post: post, err: err}
	}
}

func cmdDeletePost(store *client.Store, id string) tea.Cmd {
	return func() tea.Msg {
		post, err := store.DeletePost(context.Background(), id)
		return postDeletedMsg{post: post, err: err}
	}
}

func listenEvents(ch <-chan notifications.PostEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return postEventMsg{event: ev}
	}
}
