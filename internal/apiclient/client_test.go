package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotierp/internal/tokenstore"
	"rotierp/pkg/response"
)

type recordingNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (n *recordingNotifier) Info(string) {}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

func newTestStore(t *testing.T) *tokenstore.Store {
	t.Helper()
	return tokenstore.Open(filepath.Join(t.TempDir(), "credentials.json"))
}

func newTestClient(t *testing.T, srv *httptest.Server, store *tokenstore.Store, n *recordingNotifier) *Client {
	t.Helper()
	return New(Config{
		BaseURL:       srv.URL + "/api",
		StatusBaseURL: srv.URL,
		Store:         store,
		Notifier:      n,
	})
}

func envelope(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response.Success(code, data))
}

func TestGetDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/things/1", r.URL.Path)
		envelope(w, http.StatusOK, map[string]string{"name": "roti"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, newTestStore(t), &recordingNotifier{})
	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/things/1", nil, &out))
	assert.Equal(t, "roti", out.Name)
}

func TestGetDecodesBarePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"plain"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, newTestStore(t), &recordingNotifier{})
	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/things/1", nil, &out))
	assert.Equal(t, "plain", out.Name)
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelope(w, http.StatusOK, nil)
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.Set(tokenstore.KeyAccessToken, "tok-1"))
	c := newTestClient(t, srv, store, &recordingNotifier{})

	require.NoError(t, c.Get(context.Background(), "/things", nil, nil))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	var refreshes, attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			atomic.AddInt32(&refreshes, 1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "refresh-1", body["refreshToken"])
			envelope(w, http.StatusOK, map[string]string{"accessToken": "tok-new"})
		case "/api/things":
			atomic.AddInt32(&attempts, 1)
			if r.Header.Get("Authorization") != "Bearer tok-new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			envelope(w, http.StatusOK, map[string]string{"name": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  "tok-stale",
		tokenstore.KeyRefreshToken: "refresh-1",
	}))
	c := newTestClient(t, srv, store, &recordingNotifier{})

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/things", nil, &out))
	assert.Equal(t, "ok", out.Name)
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshes))
	assert.EqualValues(t, 2, atomic.LoadInt32(&attempts))

	// the refreshed token is persisted
	tok, ok := store.Get(tokenstore.KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-new", tok)
}

func TestUnauthorizedWithoutRefreshTokenClearsSession(t *testing.T) {
	var refreshes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshes, 1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.Set(tokenstore.KeyAccessToken, "tok-stale"))
	c := newTestClient(t, srv, store, &recordingNotifier{})

	err := c.Get(context.Background(), "/things", nil, nil)
	var authErr *AuthExpiredError
	require.ErrorAs(t, err, &authErr)
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshes))

	_, ok := store.AccessToken()
	assert.False(t, ok)
}

func TestRefreshRejectedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(response.Error(http.StatusUnauthorized, "invalid refresh token"))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  "tok-stale",
		tokenstore.KeyRefreshToken: "refresh-bad",
		tokenstore.KeyUser:         `{"id":"u1"}`,
	}))
	c := newTestClient(t, srv, store, &recordingNotifier{})

	err := c.Get(context.Background(), "/things", nil, nil)
	var authErr *AuthExpiredError
	require.ErrorAs(t, err, &authErr)

	for _, key := range []string{tokenstore.KeyAccessToken, tokenstore.KeyRefreshToken, tokenstore.KeyUser} {
		_, ok := store.Get(key)
		assert.False(t, ok, key)
	}
}

func TestSecondUnauthorizedAfterRefreshStops(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			envelope(w, http.StatusOK, map[string]string{"accessToken": "tok-still-bad"})
			return
		}
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  "tok-stale",
		tokenstore.KeyRefreshToken: "refresh-1",
	}))
	c := newTestClient(t, srv, store, &recordingNotifier{})

	err := c.Get(context.Background(), "/things", nil, nil)
	var authErr *AuthExpiredError
	require.ErrorAs(t, err, &authErr)

	// one original attempt plus exactly one retry
	assert.EqualValues(t, 2, atomic.LoadInt32(&attempts))
	_, ok := store.AccessToken()
	assert.False(t, ok)
}

func TestConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	var refreshes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			atomic.AddInt32(&refreshes, 1)
			time.Sleep(50 * time.Millisecond) // widen the race window
			envelope(w, http.StatusOK, map[string]string{"accessToken": "tok-new"})
		default:
			if r.Header.Get("Authorization") == "Bearer tok-new" {
				envelope(w, http.StatusOK, nil)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  "tok-stale",
		tokenstore.KeyRefreshToken: "refresh-1",
	}))
	c := newTestClient(t, srv, store, &recordingNotifier{})

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(context.Background(), "/things", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshes))
}

func TestServerErrorNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(response.Error(http.StatusInternalServerError, "boom"))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c := newTestClient(t, srv, newTestStore(t), n)

	err := c.Get(context.Background(), "/things", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServer())
	assert.Equal(t, "boom", apiErr.Message)
	assert.Equal(t, 1, n.count())
}

func TestClientErrorDoesNotNotify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(response.Error(http.StatusNotFound, "no such thing"))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c := newTestClient(t, srv, newTestStore(t), n)

	err := c.Get(context.Background(), "/things/nope", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.False(t, apiErr.IsServer())
	assert.Equal(t, "no such thing", apiErr.Message)
	assert.Equal(t, 0, n.count())
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	n := &recordingNotifier{}
	c := New(Config{
		BaseURL:  "http://127.0.0.1:1/api", // nothing listens here
		Store:    newTestStore(t),
		Notifier: n,
	})

	err := c.Get(context.Background(), "/things", nil, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, netErr.Timeout)
	assert.Equal(t, 1, n.count())
}

func TestTimeoutIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c := New(Config{
		BaseURL:  srv.URL + "/api",
		Timeout:  20 * time.Millisecond,
		Store:    newTestStore(t),
		Notifier: n,
	})

	err := c.Get(context.Background(), "/slow", nil, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout)
}

func TestCancelledContextPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c := newTestClient(t, srv, newTestStore(t), n)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := c.Get(ctx, "/slow", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n.count())
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/db-status", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		envelope(w, http.StatusOK, map[string]interface{}{"database": "connected"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, newTestStore(t), &recordingNotifier{})
	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "connected", status["database"])
}
