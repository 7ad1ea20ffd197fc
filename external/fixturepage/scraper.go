package fixturepage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
	"github.com/riskibarqy/footy-tipping/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html"
)

const (
	SourceName       = "fixturepage"
	defaultUserAgent = "Mozilla/5.0 (compatible; AFL-Tipping-App/1.0)"
	defaultTimeout   = 10 * time.Second
	maxPageBytes     = 8 << 20
)

var (
	errPageTransient = crerr.New("fixture page transient failure")
	ErrEmptyPage     = crerr.New("fixture page has no readable text")
)

// boilerplate is removed before text extraction.
var boilerplate = "script, style, noscript, template, iframe, svg, nav, header, footer, aside, form"

var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "blockquote": {}, "br": {}, "dd": {}, "div": {},
	"dl": {}, "dt": {}, "figcaption": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {},
	"h5": {}, "h6": {}, "hr": {}, "li": {}, "main": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "tbody": {}, "td": {}, "th": {}, "thead": {}, "tr": {}, "ul": {},
}

type ScraperConfig struct {
	HTTPClient     *http.Client
	URL            string
	UserAgent      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Scraper downloads a fixture web page and hands its readable text to the
// normalizer. It does no fixture parsing itself.
type Scraper struct {
	httpClient *http.Client
	pageURL    string
	userAgent  string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewScraper(cfg ScraperConfig) *Scraper {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Scraper{
		httpClient: httpClient,
		pageURL:    strings.TrimSpace(cfg.URL),
		userAgent:  userAgent,
		logger:     logger,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

func (s *Scraper) Name() string {
	return SourceName
}

// FetchRaw ignores season and round; the page shows whatever it shows.
func (s *Scraper) FetchRaw(ctx context.Context, _ int, _ *int) (fixture.RawResult, error) {
	if s.pageURL == "" {
		return fixture.RawResult{}, fmt.Errorf("fixture page url is required")
	}

	var doc *goquery.Document
	err := s.breaker.Execute(func() error {
		var fetchErr error
		doc, fetchErr = s.download(ctx)
		return fetchErr
	}, func(err error) bool { return stderrors.Is(err, errPageTransient) })
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			s.logger.WarnContext(ctx, "fixture page circuit breaker rejected request", "state", s.breaker.State())
		}
		return fixture.RawResult{}, err
	}

	text := ExtractText(doc)
	if strings.TrimSpace(text) == "" {
		return fixture.RawResult{}, fmt.Errorf("%w: url=%s", ErrEmptyPage, s.pageURL)
	}

	return fixture.RawResult{
		Kind:   fixture.RawKindText,
		Source: SourceName,
		Text:   text,
	}, nil
}

func (s *Scraper) download(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("user-agent", s.userAgent)
	req.Header.Set("accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errPageTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: page status=%d", errPageTransient, resp.StatusCode)
		}
		return nil, fmt.Errorf("page status=%d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: parse page: %v", errPageTransient, err)
	}
	return doc, nil
}

// ExtractText returns the readable text of the page's main content, one
// block element per line. Markup and boilerplate regions are dropped.
func ExtractText(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	doc.Find(boilerplate).Remove()

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("article").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for _, node := range root.Nodes {
		writeNodeText(buf, node)
	}

	lines := strings.Split(buf.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeNodeText(buf *bytebufferpool.ByteBuffer, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		_, _ = buf.WriteString(node.Data)
		return
	case html.CommentNode:
		return
	}

	_, block := blockElements[node.Data]
	if block && node.Type == html.ElementNode {
		_ = buf.WriteByte('\n')
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeNodeText(buf, child)
	}
	if block && node.Type == html.ElementNode {
		_ = buf.WriteByte('\n')
	} else if node.Type == html.ElementNode {
		_ = buf.WriteByte(' ')
	}
}
