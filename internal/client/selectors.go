package client

import (
	"strings"

	"postboard/internal/models"
)

// FilterPosts returns the items whose name contains q, ignoring case. An
// empty q returns items unchanged.
func FilterPosts(items []models.PostPrimitive, q string) []models.PostPrimitive {
	if q == "" {
		return items
	}
	needle := strings.ToLower(q)
	out := make([]models.PostPrimitive, 0, len(items))
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilteredPosts applies the current filter to the current items.
func (s *Store) FilteredPosts() []models.PostPrimitive {
	st := s.State()
	return FilterPosts(st.Items, st.Filter)
}
