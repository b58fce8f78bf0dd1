package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/okreads/internal/api"
	"github.com/blackwell-systems/okreads/internal/model"
)

func newClient(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New(srv.URL+"/api/", 5*time.Second)
}

func TestGetReadingList(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/reading-list", r.URL.Path)
		_, _ = w.Write([]byte(`[{"bookId":"b1","title":"One","finished":true}]`))
	})

	items, err := c.GetReadingList(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b1", items[0].BookID)
	assert.True(t, items[0].Finished)
}

func TestGetReadingList_NullBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	items, err := c.GetReadingList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAddToReadingList_SendsIsAdded(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reading-list", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "b1", body["id"])
		assert.Equal(t, true, body["isAdded"])
		w.WriteHeader(http.StatusCreated)
	})

	err := c.AddToReadingList(context.Background(), model.BookView{Book: model.Book{ID: "b1"}, IsAdded: true})
	require.NoError(t, err)
}

func TestRemoveFromReadingList(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/reading-list/b 1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.RemoveFromReadingList(context.Background(), "b 1"))
}

func TestMarkAsFinished(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/reading-list/b1/finished", r.URL.Path)
	})
	require.NoError(t, c.MarkAsFinished(context.Background(), "b1"))
}

func TestSearchBooks_BareArray(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/search", r.URL.Path)
		assert.Equal(t, "go lang", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[{"id":"b1","title":"Go","authors":["Pike"]}]`))
	})
	books, err := c.SearchBooks(context.Background(), "go lang")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{"Pike"}, books[0].Authors)
}

func TestSearchBooks_Envelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"b1"},{"id":"b2"}]}`))
	})
	books, err := c.SearchBooks(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, api.ErrNotFound},
		{http.StatusUnprocessableEntity, api.ErrUnprocessable},
		{http.StatusBadGateway, api.ErrServer},
	}
	for _, tc := range cases {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		err := c.RemoveFromReadingList(context.Background(), "b1")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestErrorMapping_StatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	})
	err := c.RemoveFromReadingList(context.Background(), "b1")
	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTeapot, se.StatusCode)
	assert.Equal(t, "nope", se.Body)
}

func TestRateLimit_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c := api.New(srv.URL, time.Second, api.WithRateLimit(0.001))

	_, err := c.GetReadingList(context.Background())
	require.NoError(t, err, "first request uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.GetReadingList(ctx)
	assert.Error(t, err)
}
