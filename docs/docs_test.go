package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocMatchesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Host     string                    `json:"host"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "localhost:3000", doc.Host)
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths["/posts"], "get")
	assert.Contains(t, doc.Paths["/posts"], "post")
	assert.Contains(t, doc.Paths["/posts/{id}"], "get")
	assert.Contains(t, doc.Paths["/posts/{id}"], "delete")
}
