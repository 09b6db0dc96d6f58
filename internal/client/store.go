package client

import (
	"context"
	"errors"
	"slices"
	"sync"

	"postboard/internal/models"
	"postboard/internal/notifications"
	"postboard/internal/validation"
)

// Fallback messages used when a failure carries no text of its own.
const (
	MsgLoadFailed   = "error loading posts"
	MsgCreateFailed = "error creating post"
	MsgDeleteFailed = "error deleting post"
)

// State is a snapshot of the store.
type State struct {
	Items   []models.PostPrimitive
	Filter  string
	Loading bool
	Loaded  bool
	Error   string
}

func initialState() State {
	return State{Items: []models.PostPrimitive{}, Loading: true}
}

// Store holds fetched posts plus the filter and loading/error flags. The lock
// is never held across a network call, so concurrent dispatches interleave.
type Store struct {
	api PostsAPI

	mu    sync.Mutex
	state State
}

// NewStore returns a store in the initial (loading, not loaded) state.
func NewStore(api PostsAPI) *Store {
	return &Store{api: api, state: initialState()}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Items = slices.Clone(s.state.Items)
	return out
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// FetchPosts replaces the items with the server's list.
func (s *Store) FetchPosts(ctx context.Context) error {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})

	items, err := s.api.List(ctx)
	if err != nil {
		s.update(func(st *State) {
			st.Loading = false
			st.Error = failureMessage(err, MsgLoadFailed)
		})
		return err
	}

	s.update(func(st *State) {
		st.Loading = false
		st.Items = items
		st.Loaded = true
	})
	return nil
}

// CreatePost creates a post and prepends it to the items.
func (s *Store) CreatePost(ctx context.Context, in validation.CreatePostRequest) (models.PostPrimitive, error) {
	s.update(func(st *State) { st.Error = "" })

	post, err := s.api.Create(ctx, in)
	if err != nil {
		s.update(func(st *State) { st.Error = failureMessage(err, MsgCreateFailed) })
		return models.PostPrimitive{}, err
	}

	s.update(func(st *State) {
		st.Items = append([]models.PostPrimitive{post}, st.Items...)
	})
	return post, nil
}

// DeletePost deletes the post and removes it from the items by id.
func (s *Store) DeletePost(ctx context.Context, id string) (models.PostPrimitive, error) {
	post, err := s.api.Remove(ctx, id)
	if err != nil {
		s.update(func(st *State) { st.Error = failureMessage(err, MsgDeleteFailed) })
		return models.PostPrimitive{}, err
	}

	s.update(func(st *State) { st.Items = removeByID(st.Items, post.ID) })
	return post, nil
}

// SetFilter replaces the filter text.
func (s *Store) SetFilter(text string) {
	s.update(func(st *State) { st.Filter = text })
}

// Reset restores the initial state.
func (s *Store) Reset() {
	s.update(func(st *State) { *st = initialState() })
}

// ApplyEvent folds a post event published by the server into the items, so
// changes made by other clients show up without a refetch.
func (s *Store) ApplyEvent(ev notifications.PostEvent) {
	s.update(func(st *State) {
		switch ev.Type {
		case notifications.EventPostCreated:
			if slices.ContainsFunc(st.Items, func(p models.PostPrimitive) bool { return p.ID == ev.Payload.ID }) {
				return
			}
			st.Items = append([]models.PostPrimitive{ev.Payload}, st.Items...)
		case notifications.EventPostDeleted:
			st.Items = removeByID(st.Items, ev.Payload.ID)
		}
	})
}

func removeByID(items []models.PostPrimitive, id string) []models.PostPrimitive {
	return slices.DeleteFunc(slices.Clone(items), func(p models.PostPrimitive) bool { return p.ID == id })
}

func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
