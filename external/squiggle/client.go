package squiggle

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
	"github.com/riskibarqy/footy-tipping/internal/platform/resilience"
)

const (
	SourceName       = "squiggle"
	defaultBaseURL   = "https://api.squiggle.com.au/"
	defaultUserAgent = "AFL-Tipping-App/1.0 (Contact: admin@example.com)"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
)

var (
	errSquiggleTransient = crerr.New("squiggle transient failure")
	ErrNoGames           = crerr.New("squiggle returned no games")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads games from the Squiggle results API. It makes one attempt per
// call; failures surface as errors for the caller to fall back on.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
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

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

func (c *Client) Name() string {
	return SourceName
}

// FetchRaw returns the games of a season, optionally restricted to one
// round. An empty games list is reported as ErrNoGames.
func (c *Client) FetchRaw(ctx context.Context, season int, round *int) (fixture.RawResult, error) {
	games, err := c.fetchGames(ctx, season, round)
	if err != nil {
		return fixture.RawResult{}, err
	}
	return fixture.RawResult{
		Kind:   fixture.RawKindGames,
		Source: SourceName,
		Games:  games,
	}, nil
}

// FetchRoundNumbers lists the distinct round numbers present in a season.
func (c *Client) FetchRoundNumbers(ctx context.Context, season int) ([]int, error) {
	games, err := c.fetchGames(ctx, season, nil)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, fixture.RegularSeasonRounds)
	for _, game := range games {
		if game.Round != nil {
			out = append(out, *game.Round)
		}
	}
	return out, nil
}

type gamesEnvelope struct {
	Games []fixture.RawGame `json:"games"`
}

func (c *Client) fetchGames(ctx context.Context, season int, round *int) ([]fixture.RawGame, error) {
	fullURL, err := c.gamesURL(season, round)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = c.breaker.Execute(func() error {
		out, reqErr, _ := c.flight.DoContext(ctx, fullURL, func() (any, error) {
			return c.executeRequest(ctx, fullURL)
		})
		if reqErr != nil {
			return reqErr
		}
		raw, _ = out.([]byte)
		return nil
	}, isSquiggleCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "squiggle circuit breaker rejected request", "state", c.breaker.State())
		}
		return nil, err
	}

	var envelope gamesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode squiggle games: %w", err)
	}
	if len(envelope.Games) == 0 {
		return nil, fmt.Errorf("%w: url=%s", ErrNoGames, fullURL)
	}
	return envelope.Games, nil
}

func (c *Client) gamesURL(season int, round *int) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse squiggle base url: %w", err)
	}

	values := url.Values{}
	values.Set("q", "games")
	values.Set("year", strconv.Itoa(season))
	if round != nil {
		values.Set("round", strconv.Itoa(*round))
	}
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errSquiggleTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errSquiggleTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: squiggle status=%d body=%s", errSquiggleTransient, resp.StatusCode, abbreviateBody(raw))
		}
		return nil, fmt.Errorf("squiggle status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	return raw, nil
}

func isSquiggleCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errSquiggleTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
