package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentmatch/backend/internal/domain"
)

func newMeiliServer(t *testing.T, status int, body string, inspect func(map[string]interface{})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/fragrances/search", r.URL.Path)
		assert.Equal(t, "Bearer meili-key", r.Header.Get("Authorization"))

		if inspect != nil {
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			inspect(payload)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestMeiliSearcher_Search(t *testing.T) {
	body := `{
	  "hits": [
	    {"id": "v1", "name": "Sauvage Elixir", "brand": "Dior", "brand_id": "dior", "intensity_score": 9, "popularity_score": 81, "top_notes": "Cinnamon, Nutmeg"},
	    {"id": "v2", "name": "Sauvage", "brand": "Dior", "rating_value": 4.5, "rating_count": 9999}
	  ],
	  "estimatedTotalHits": 2,
	  "processingTimeMs": 1,
	  "query": "sauvage"
	}`

	server := newMeiliServer(t, http.StatusOK, body, func(payload map[string]interface{}) {
		assert.Equal(t, "sauvage", payload["q"])
		assert.Equal(t, float64(25), payload["limit"])
		assert.Equal(t, `brand_id = "dior"`, payload["filter"])
	})
	defer server.Close()

	searcher := NewMeiliSearcher(server.URL, "meili-key", "", nil)

	variants, err := searcher.Search(context.Background(), domain.CatalogQuery{Text: "sauvage", BrandID: "dior", Limit: 25})

	require.NoError(t, err)
	require.Len(t, variants, 2)

	assert.Equal(t, "Sauvage Elixir", variants[0].Name)
	assert.Equal(t, []string{"Cinnamon", "Nutmeg"}, variants[0].Notes)
	require.NotNil(t, variants[0].IntensityScore)
	assert.Equal(t, 9.0, *variants[0].IntensityScore)

	assert.Equal(t, "dior", variants[1].BrandID)
	require.NotNil(t, variants[1].PopularityScore)
	assert.Equal(t, 90.0, *variants[1].PopularityScore)
	assert.Nil(t, variants[1].Notes)
}

func TestMeiliSearcher_NoHits(t *testing.T) {
	server := newMeiliServer(t, http.StatusOK, `{"hits": [], "estimatedTotalHits": 0, "query": "nothing"}`, nil)
	defer server.Close()

	variants, err := NewMeiliSearcher(server.URL, "meili-key", "fragrances", nil).
		Search(context.Background(), domain.CatalogQuery{Text: "nothing"})

	assert.Nil(t, variants)
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestMeiliSearcher_ErrorResponse(t *testing.T) {
	body := `{"message": "Attribute brand_id is not filterable.", "code": "invalid_search_filter", "type": "invalid_request", "link": "https://docs.meilisearch.com/errors#invalid_search_filter"}`
	server := newMeiliServer(t, http.StatusBadRequest, body, nil)
	defer server.Close()

	variants, err := NewMeiliSearcher(server.URL, "meili-key", "fragrances", nil).
		Search(context.Background(), domain.CatalogQuery{Text: "sauvage", BrandID: "dior"})

	assert.Nil(t, variants)
	assert.ErrorIs(t, err, domain.ErrCatalogFailure)
}
