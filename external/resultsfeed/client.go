package resultsfeed

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

	"github.com/matchdayhq/matchday/internal/platform/logging"
	"github.com/matchdayhq/matchday/internal/platform/resilience"
	"github.com/matchdayhq/matchday/internal/usecase"
)

const (
	defaultBaseURL = "https://api.football-data.org/v4"
	authHeader     = "X-Auth-Token"

	// The provider caps the ids filter, so lookups are chunked.
	matchChunkSize = 20
)

var errFeedTransient = crerr.New("results feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches full-time results from the football-data style provider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type matchPayload struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Score  struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

type matchesEnvelope struct {
	Matches []matchPayload `json:"matches"`
}

// FetchResults looks up the listed fixtures and returns whatever the
// provider knows about them; fixtures the provider does not recognize are
// simply absent from the result.
func (c *Client) FetchResults(ctx context.Context, fixtureIDs []int64) ([]usecase.ExternalMatchResult, error) {
	if len(fixtureIDs) == 0 {
		return nil, nil
	}

	out := make([]usecase.ExternalMatchResult, 0, len(fixtureIDs))
	for start := 0; start < len(fixtureIDs); start += matchChunkSize {
		end := min(start+matchChunkSize, len(fixtureIDs))

		chunk := fixtureIDs[start:end]
		idValues := make([]string, 0, len(chunk))
		for _, id := range chunk {
			idValues = append(idValues, strconv.FormatInt(id, 10))
		}

		var envelope matchesEnvelope
		query := map[string]string{"ids": strings.Join(idValues, ",")}
		if err := c.doJSON(ctx, "/matches", query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch match results: %w", err)
		}

		for _, item := range envelope.Matches {
			out = append(out, usecase.ExternalMatchResult{
				FixtureID: item.ID,
				Status:    item.Status,
				HomeGoals: item.Score.FullTime.Home,
				AwayGoals: item.Score.FullTime.Away,
			})
		}
	}

	return out, nil
}

// FetchResult looks up a single fixture.
func (c *Client) FetchResult(ctx context.Context, fixtureID int64) (usecase.ExternalMatchResult, error) {
	if fixtureID <= 0 {
		return usecase.ExternalMatchResult{}, fmt.Errorf("fixture id must be greater than zero")
	}

	var payload matchPayload
	path := "/matches/" + strconv.FormatInt(fixtureID, 10)
	if err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return usecase.ExternalMatchResult{}, fmt.Errorf("fetch match result fixture_id=%d: %w", fixtureID, err)
	}

	return usecase.ExternalMatchResult{
		FixtureID: payload.ID,
		Status:    payload.Status,
		HomeGoals: payload.Score.FullTime.Home,
		AwayGoals: payload.Score.FullTime.Away,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "results feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isFeedCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set(authHeader, c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFeedTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "results feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isFeedCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFeedTransient)
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
