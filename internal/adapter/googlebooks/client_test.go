package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogeshkhant77/Booksy/internal/app/config"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.GoogleBooksConfig{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	}, logger.NoOp())
}

const sampleVolume = `{
	"id": "abc123",
	"volumeInfo": {
		"title": "Dune",
		"authors": ["Frank Herbert"],
		"publisher": "Ace",
		"publishedDate": "1965",
		"pageCount": 412,
		"categories": ["Fiction"],
		"language": "en",
		"industryIdentifiers": [
			{"type": "ISBN_10", "identifier": "0441013597"},
			{"type": "ISBN_13", "identifier": "9780441013593"}
		],
		"imageLinks": {"smallThumbnail": "small.jpg", "thumbnail": "thumb.jpg"},
		"averageRating": 4.5,
		"ratingsCount": 1000
	}
}`

func TestClient_Search_MapsAndClamps(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":          q.Get("q"),
			"maxResults": q.Get("maxResults"),
			"startIndex": q.Get("startIndex"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 1, "items": [` + sampleVolume + `]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Search(context.Background(), "dune", 0, 100)

	require.NoError(t, err)
	assert.Equal(t, "dune", gotQuery["q"])
	assert.Equal(t, "40", gotQuery["maxResults"], "maxResults above 40 must be clamped")
	assert.Equal(t, 1, result.TotalItems)
	require.Len(t, result.Books, 1)

	book := result.Books[0]
	assert.Equal(t, "abc123", book.GoogleID)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, "Fiction", book.Genre)
	assert.Equal(t, "9780441013593", book.ISBN, "ISBN-13 preferred over ISBN-10")
	assert.Equal(t, "thumb.jpg", book.Thumbnail)
}

func TestClient_Search_DefaultsForMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 1, "items": [{"id": "bare", "volumeInfo": {}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Search(context.Background(), "anything", 0, 20)

	require.NoError(t, err)
	require.Len(t, result.Books, 1)

	book := result.Books[0]
	assert.Equal(t, "No title", book.Title)
	assert.Equal(t, []string{"Unknown"}, book.Authors)
	assert.Equal(t, "Unknown", book.Author)
	assert.Equal(t, "No description available", book.Description)
	assert.Equal(t, "General", book.Genre)
	assert.Equal(t, "en", book.Language)
	assert.Empty(t, book.ISBN)
}

func TestClient_GetVolume_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetVolume(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrVolumeNotFound)
}

func TestClient_Browse_SubjectQuery(t *testing.T) {
	var gotQ, gotOrder string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotOrder = r.URL.Query().Get("orderBy")
		_, _ = w.Write([]byte(`{"totalItems": 0, "items": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Browse(context.Background(), "fantasy", 0, 10)

	require.NoError(t, err)
	assert.Equal(t, "subject:fantasy", gotQ)
	assert.Equal(t, "relevance", gotOrder)
}

func TestClient_UpstreamErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), "dune", 0, 20)

	assert.Error(t, err)
}
