package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
)

func big5(t *testing.T, s string) []byte {
	t.Helper()
	b, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestNewPageFetcher_Validation(t *testing.T) {
	_, err := NewPageFetcher(PageOptions{})
	assert.Error(t, err)

	_, err = NewPageFetcher(PageOptions{BaseURL: "http://example.com", Encoding: "no-such-charset"})
	assert.Error(t, err)

	f, err := NewPageFetcher(PageOptions{BaseURL: "http://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Mozilla/5.0", f.opts.UserAgent)
	assert.Equal(t, "big5", f.opts.Encoding)
	assert.Equal(t, 30*time.Second, f.opts.Timeout)
	assert.Nil(t, f.limiter)
}

func TestFetch_FirstPageIsFormPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products.asp", r.URL.Path)
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "search", r.PostForm.Get("type"))
		assert.Equal(t, "Rolex", r.PostForm.Get("t1"))
		assert.Equal(t, "1", r.PostForm.Get("page"))
		_, hasT2 := r.PostForm["t2"]
		assert.True(t, hasT2)

		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(big5(t, `<html><body><span class="shop">台北旗艦店</span></body></html>`))
	}))
	defer srv.Close()

	f, err := NewPageFetcher(PageOptions{BaseURL: srv.URL + "/products.asp"})
	require.NoError(t, err)

	doc, err := f.Fetch(context.Background(), "Rolex", 1)
	require.NoError(t, err)
	assert.Equal(t, "台北旗艦店", doc.Find("span.shop").Text())
}

func TestFetch_LaterPagesAreQueryGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "search", q.Get("type"))
		assert.Equal(t, "Rolex", q.Get("t1"))
		assert.Equal(t, "3", q.Get("page"))
		_, _ = w.Write([]byte(`<html><body><p>ok</p></body></html>`))
	}))
	defer srv.Close()

	f, err := NewPageFetcher(PageOptions{BaseURL: srv.URL + "/products.asp", RequestsPerSecond: 100})
	require.NoError(t, err)
	require.NotNil(t, f.limiter)

	doc, err := f.Fetch(context.Background(), "Rolex", 3)
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Find("p").Text())
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, err := NewPageFetcher(PageOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "Rolex", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetch_TransportErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	f, err := NewPageFetcher(PageOptions{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "Rolex", 1)
	assert.Error(t, err)
}

func TestFetch_InvalidPage(t *testing.T) {
	f, err := NewPageFetcher(PageOptions{BaseURL: "http://example.com"})
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "Rolex", 0)
	assert.Error(t, err)
}

func TestSearchParams(t *testing.T) {
	assert.Equal(t, map[string]string{
		"type": "search", "t1": "Rolex", "t2": "", "t3": "", "page": "2",
	}, SearchParams("Rolex", 2))
}
