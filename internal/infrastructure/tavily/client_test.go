package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oshilens/backend/internal/infrastructure/restclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	client := NewClient(ClientOpts{APIKey: "tvly-test", BaseURL: baseURL})
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient(ClientOpts{APIKey: "tvly-test", MaxResults: 5})

	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 5, client.maxResults)
	assert.Equal(t, "tavily", client.Name())
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer tvly-test", r.Header.Get("Authorization"))

		var body searchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ルフィ", body.Query)
		assert.Equal(t, defaultMaxResults, body.MaxResults)
		assert.True(t, body.IncludeRawContent)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":"ルフィ","results":[
			{"title":"ルフィ フィギュア","url":"https://suruga-ya.jp/product/detail/456","content":"中古 1,200円","raw_content":"<p>品切れ</p>","score":0.9},
			{"title":"missing url","url":"","content":"x","score":0.1}
		]}`))
	}))
	defer server.Close()

	hits, err := newTestClient(server.URL).Search(context.Background(), "ルフィ")

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "ルフィ フィギュア", hits[0].Title)
	assert.Equal(t, "https://suruga-ya.jp/product/detail/456", hits[0].URL)
	assert.Equal(t, "中古 1,200円", hits[0].Snippet)
	assert.Equal(t, "品切れ", hits[0].Content)
}

func TestSearch_Failure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "x")

	var se *restclient.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, 1, calls)
}
