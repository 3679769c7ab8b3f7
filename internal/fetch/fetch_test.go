package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verustcode/reportng/consts"
)

func TestClient_Get(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("body { color: red; }"))
	}))
	defer srv.Close()

	c := New(Options{})
	body, err := c.Get(context.Background(), srv.URL+"/bootstrap.min.css")
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }", string(body))
	assert.Equal(t, consts.DefaultUserAgent, gotUA)
}

func TestClient_Get_CustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := New(Options{UserAgent: "reportng-test"}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "reportng-test", gotUA)
}

func TestClient_Get_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(Options{}).Get(context.Background(), srv.URL+"/missing.js")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_Get_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(Options{Timeout: time.Second}).Get(context.Background(), url)
	assert.Error(t, err)
}

func TestClient_FinalURL_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a/42.json", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/recordings/42.cast", http.StatusFound)
	})
	mux.HandleFunc("/recordings/42.cast", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	final, err := New(Options{}).FinalURL(context.Background(), srv.URL+"/a/42.json")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/recordings/42.cast", final)
}

func TestClient_FinalURL_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).FinalURL(ctx, srv.URL)
	assert.Error(t, err)
}
