package fixturepage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
)

const fixturePage = `<!doctype html>
<html><head><title>AFL Fixture</title><style>.x{color:red}</style></head>
<body>
<nav><a href="/">Home</a> <a href="/afl">AFL vs NRL</a></nav>
<main>
  <h2>Round 5</h2>
  <div class="match"><span>Adelaide</span> v <span>Port Adelaide</span></div>
  <div class="venue">Adelaide Oval</div>
  <div class="time">7:40pm</div>
  <script>var fixtures = "Carlton v Richmond";</script>
</main>
<footer>Copyright Collingwood v Carlton Pty Ltd</footer>
</body></html>`

func TestExtractText_DropsMarkupAndBoilerplate(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixturePage))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	text := ExtractText(doc)
	want := "Round 5\nAdelaide v Port Adelaide\nAdelaide Oval\n7:40pm"
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", text, want)
	}
}

func TestScraper_FetchRawAndNormalize(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	raw, err := NewScraper(ScraperConfig{URL: srv.URL}).FetchRaw(context.Background(), 2025, nil)
	if err != nil {
		t.Fatalf("FetchRaw error: %v", err)
	}
	if raw.Kind != fixture.RawKindText || gotUA == "" {
		t.Fatalf("unexpected raw result %+v ua=%q", raw, gotUA)
	}

	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	items := fixture.NewNormalizer(func() time.Time { return now }).Normalize(raw)
	if len(items) != 1 {
		t.Fatalf("expected exactly one fixture, got %+v", items)
	}
	got := items[0]
	if got.HomeTeam != "Adelaide" || got.AwayTeam != "Port Adelaide" || got.Venue != "Adelaide Oval" || got.Time != "19:40" || got.Round != "Round 5" {
		t.Fatalf("unexpected fixture: %+v", got)
	}
}

func TestScraper_EmptyPageIsFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>1</script></body></html>`))
	}))
	defer srv.Close()

	_, err := NewScraper(ScraperConfig{URL: srv.URL}).FetchRaw(context.Background(), 2025, nil)
	if !errors.Is(err, ErrEmptyPage) {
		t.Fatalf("expected ErrEmptyPage, got %v", err)
	}
}

func TestScraper_UnreachableIsFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewScraper(ScraperConfig{URL: url, Timeout: 200 * time.Millisecond}).FetchRaw(context.Background(), 2025, nil); err == nil {
		t.Fatalf("expected error for unreachable page")
	}
}
