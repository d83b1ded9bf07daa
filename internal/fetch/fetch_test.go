package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Makepad-fr/listbench/internal/model"
)

func newMoviesServer(t *testing.T, body string, status int, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/movies" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMovies(t *testing.T) {
	body := `[{"id":"1","title":"A"},{"id":"2","title":"B"},{"id":"3","title":"C"}]`
	srv := newMoviesServer(t, body, http.StatusOK, nil)

	c := NewClient(srv.URL)
	res := c.FetchMovies(context.Background(), 1)
	if res.Err != nil {
		t.Fatalf("FetchMovies: %v", res.Err)
	}
	if len(res.Value) != 3 {
		t.Fatalf("got %d items, want 3", len(res.Value))
	}
	if res.Value[2].ID != "3" || res.Value[2].Title != "C" {
		t.Errorf("unexpected third item: %+v", res.Value[2])
	}
	if res.InflightMillis() < 0 || res.JSONParseMillis() < 0 || res.TotalMillis() < 0 {
		t.Errorf("negative timings: %+v", res)
	}
	if res.Total < res.Inflight {
		t.Errorf("Total %v shorter than Inflight %v", res.Total, res.Inflight)
	}
}

func TestRequestSendsSizeAndHeader(t *testing.T) {
	var gotSize, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSize = r.URL.Query().Get("size")
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL + "/").FetchMovies(context.Background(), 2.5)
	if res.Err != nil {
		t.Fatalf("FetchMovies: %v", res.Err)
	}
	if gotSize != "2.5" {
		t.Errorf("size = %q, want 2.5", gotSize)
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotCT)
	}
}

func TestFetchMoviesParseFailure(t *testing.T) {
	srv := newMoviesServer(t, `[{"id":"1",`, http.StatusOK, nil)

	res := NewClient(srv.URL).FetchMovies(context.Background(), 1)
	if !errors.Is(res.Err, ErrParse) {
		t.Fatalf("Err = %v, want ErrParse", res.Err)
	}
	if res.Value != nil {
		t.Errorf("Value = %v, want nil", res.Value)
	}
}

func TestFetchMoviesHTTPError(t *testing.T) {
	srv := newMoviesServer(t, `oops`, http.StatusInternalServerError, nil)

	res := NewClient(srv.URL).FetchMovies(context.Background(), 1)
	if !errors.Is(res.Err, ErrNetwork) {
		t.Fatalf("Err = %v, want ErrNetwork", res.Err)
	}
}

func TestFetchMoviesNetworkFailure(t *testing.T) {
	srv := newMoviesServer(t, `[]`, http.StatusOK, nil)
	url := srv.URL
	srv.Close()

	res := NewClient(url).FetchMovies(context.Background(), 1)
	if !errors.Is(res.Err, ErrNetwork) {
		t.Fatalf("Err = %v, want ErrNetwork", res.Err)
	}
	if res.Inflight != 0 || res.JSONParse != 0 {
		t.Errorf("failed fetch carried timings: %+v", res)
	}
}

func TestInvalidSizeNeverReachesServer(t *testing.T) {
	var hits int32
	srv := newMoviesServer(t, `[]`, http.StatusOK, &hits)

	for _, size := range []float64{0, -1} {
		res := NewClient(srv.URL).FetchMovies(context.Background(), model.Size(size))
		if !errors.Is(res.Err, model.ErrInvalidSize) {
			t.Errorf("size %v: Err = %v, want ErrInvalidSize", size, res.Err)
		}
		if errors.Is(res.Err, ErrNetwork) {
			t.Errorf("size %v: invalid size reported as network failure", size)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, WithTimeout(20*time.Millisecond)).FetchMovies(context.Background(), 1)
	if !errors.Is(res.Err, ErrNetwork) {
		t.Fatalf("Err = %v, want ErrNetwork", res.Err)
	}
}

func TestRateLimitCancelled(t *testing.T) {
	srv := newMoviesServer(t, `[]`, http.StatusOK, nil)
	c := NewClient(srv.URL, WithRateLimit(0.001))

	// first request consumes the single burst token
	if res := c.FetchMovies(context.Background(), 1); res.Err != nil {
		t.Fatalf("first fetch: %v", res.Err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res := c.FetchMovies(ctx, 1)
	if !errors.Is(res.Err, ErrNetwork) {
		t.Fatalf("Err = %v, want ErrNetwork", res.Err)
	}
}

func TestURL(t *testing.T) {
	c := NewClient("")
	if got, want := c.URL(1), "http://localhost:3001/movies?size=1"; got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestWithHTTPClientOverTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","title":"A"}]`))
	}))
	defer srv.Close()

	if res := NewClient(srv.URL).FetchMovies(context.Background(), 1); !errors.Is(res.Err, ErrNetwork) {
		t.Fatalf("untrusted certificate: Err = %v, want ErrNetwork", res.Err)
	}

	res := NewClient(srv.URL, WithHTTPClient(srv.Client())).FetchMovies(context.Background(), 1)
	if res.Err != nil {
		t.Fatalf("FetchMovies: %v", res.Err)
	}
	if len(res.Value) != 1 {
		t.Errorf("got %d items, want 1", len(res.Value))
	}
}
