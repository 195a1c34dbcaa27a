package chi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPI(t *testing.T) {
	w := do(t, newSeededHandler(t), http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Openapi string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			Summary   string                     `json:"summary"`
			Responses map[string]json.RawMessage `json:"responses"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))

	assert.Equal(t, "3.0.3", doc.Openapi)
	assert.Equal(t, apiTitle, doc.Info.Title)
	require.Contains(t, doc.Paths, "/books")
	require.Contains(t, doc.Paths, "/books/{id}")

	assert.Contains(t, doc.Paths["/books"], "get")
	assert.Contains(t, doc.Paths["/books"]["post"].Responses, "201")
	assert.Contains(t, doc.Paths["/books"]["post"].Responses, "400")
	assert.Equal(t, "Add a new book", doc.Paths["/books"]["post"].Summary)

	item := doc.Paths["/books/{id}"]
	assert.Contains(t, item["get"].Responses, "404")
	assert.Contains(t, item["put"].Responses, "200")
	assert.Contains(t, item["delete"].Responses, "204")
}
