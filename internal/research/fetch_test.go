package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coldreach/internal/config"
)

func newTestResearcher(maxBytes int64) *Researcher {
	cfg := &config.Config{}
	cfg.Research.TimeoutSeconds = 5
	cfg.Research.MaxBodyBytes = maxBytes
	cfg.Research.CacheTTLHours = 1
	return NewResearcher(cfg, nil)
}

func TestResearch_HTMLPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("unexpected user agent: %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head>
			<title>Acme</title>
			<meta name="description" content="Acme sells anvils online.">
			<script src="/js/vue.min.js"></script>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	res, err := newTestResearcher(1 << 20).Research(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if res.Description != "Acme sells anvils online." {
		t.Errorf("unexpected description: %q", res.Description)
	}
	if res.Title != "Acme" {
		t.Errorf("unexpected title: %q", res.Title)
	}
	if len(res.TechHints) != 1 || res.TechHints[0] != "Vue" {
		t.Errorf("unexpected tech hints: %v", res.TechHints)
	}
	if res.URL != srv.URL {
		t.Errorf("unexpected URL: %q", res.URL)
	}
	if res.FetchedAt.IsZero() {
		t.Errorf("FetchedAt not set")
	}
	if res.FromCache {
		t.Errorf("FromCache should be false without a cache")
	}
}

func TestResearch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := newTestResearcher(1 << 20).Research(context.Background(), srv.URL); err == nil {
		t.Errorf("expected error for 404 response")
	}
}

func TestResearch_UnsupportedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	defer srv.Close()

	_, err := newTestResearcher(1 << 20).Research(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "unsupported content type") {
		t.Errorf("expected unsupported content type error, got %v", err)
	}
}

func TestResearch_InvalidScheme(t *testing.T) {
	if _, err := newTestResearcher(1 << 20).Research(context.Background(), "ftp://example.com"); err == nil {
		t.Errorf("expected error for non-http scheme")
	}
}

func TestResearch_BrokenPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("not a pdf at all"))
	}))
	defer srv.Close()

	if _, err := newTestResearcher(1 << 20).Research(context.Background(), srv.URL); err == nil {
		t.Errorf("expected error for malformed PDF body")
	}
}

func TestResearch_BodyCapStillParses(t *testing.T) {
	// The interesting bits sit inside the cap; the tail is cut off mid-page.
	page := `<html><head><meta name="description" content="Early metadata survives."><title>Cap</title></head><body>` +
		strings.Repeat("<p>filler</p>", 4000) + `</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	res, err := newTestResearcher(2048).Research(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if res.Description != "Early metadata survives." {
		t.Errorf("unexpected description: %q", res.Description)
	}
}
