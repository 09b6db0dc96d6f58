package validation

import (
	"strings"
	"testing"

	"postboard/internal/models"
)

func TestValidateCreatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  CreatePostRequest
		ok   bool
	}{
		{name: "valid", req: CreatePostRequest{Name: "A", Description: "a"}, ok: true},
		{name: "empty name", req: CreatePostRequest{Name: "", Description: "a"}, ok: false},
		{name: "empty description", req: CreatePostRequest{Name: "A", Description: ""}, ok: false},
		{name: "maximum name length", req: CreatePostRequest{Name: strings.Repeat("x", 255), Description: "a"}, ok: true},
		{name: "name too long", req: CreatePostRequest{Name: strings.Repeat("x", 256), Description: "a"}, ok: false},
		{name: "multibyte name counted in characters", req: CreatePostRequest{Name: strings.Repeat("é", 255), Description: "a"}, ok: true},
		{name: "whitespace name is kept", req: CreatePostRequest{Name: " ", Description: " "}, ok: true},
		{name: "long description", req: CreatePostRequest{Name: "A", Description: strings.Repeat("d", 10000)}, ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCreatePost(tc.req)
			if tc.ok && err != nil {
				t.Fatalf("expected valid payload, got error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected invalid payload, got nil error")
				}
				if !models.IsCode(err, models.CodeValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
			}
		})
	}
}
