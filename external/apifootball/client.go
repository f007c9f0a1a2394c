package apifootball

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-data/internal/platform/cache"
	"github.com/riskibarqy/football-data/internal/platform/logging"
	"github.com/riskibarqy/football-data/internal/platform/resilience"
	"github.com/riskibarqy/football-data/internal/usecase"
)

const defaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"

var errAPIFootballTransient = crerr.New("apifootball transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Key            string
	Host           string
	Timeout        time.Duration
	MaxAttempts    int
	Timezone       string
	Logger         *logging.Logger
	Cache          *cache.Store
	Session        *usecase.Session
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the football data provider. Responses are cached in
// a shared TTL store keyed by endpoint and parameters; only calls that
// actually hit the network count against the session's budget.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	key            string
	host           string
	timezone       string
	maxAttempts    int
	logger         *logging.Logger
	cache          *cache.Store
	session        *usecase.Session
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool

	// overridable in tests to avoid real sleeps
	backoff func(attempt int) time.Duration
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
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 5
	}

	store := cfg.Cache
	if store == nil {
		store = cache.NewStore(time.Hour)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		key:            strings.TrimSpace(cfg.Key),
		host:           strings.TrimSpace(cfg.Host),
		timezone:       strings.TrimSpace(cfg.Timezone),
		maxAttempts:    maxAttempts,
		logger:         logger,
		cache:          store,
		session:        cfg.Session,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		backoff:        expBackoff,
	}
}

// expBackoff doubles per attempt, plus up to a second of jitter.
func expBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt)*time.Second + time.Duration(rand.Int63n(int64(time.Second)))
}

// cacheKey is deterministic for one endpoint and parameter set;
// url.Values.Encode sorts keys.
func cacheKey(endpoint string, values url.Values) string {
	sum := md5.Sum([]byte(endpoint + "?" + values.Encode()))
	return hex.EncodeToString(sum[:])
}

// request returns the raw response body for one endpoint invocation,
// serving from cache inside the freshness window.
func (c *Client) request(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	key := cacheKey(endpoint, values)
	if cached, ok := c.cache.Get(ctx, key); ok {
		if raw, ok := cached.([]byte); ok {
			return raw, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "apifootball circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}

	if c.session != nil {
		c.session.RecordCall()
	}
	c.cache.Set(ctx, key, raw)

	return raw, nil
}

// executeRequest performs the network attempts. Any transport or HTTP
// failure is retried with exponential backoff until the attempt budget
// runs out; the counter never advances for failed attempts.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.backoff(attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-RapidAPI-Key", c.key)
		req.Header.Set("X-RapidAPI-Host", c.host)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.key))
			continue
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}

		lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "apifootball request failed", "url", redactAPIURL(fullURL), "attempts", c.maxAttempts, "error", lastErr)
	return nil, lastErr
}

func (c *Client) FetchCountries(ctx context.Context) ([]usecase.ExternalCountry, error) {
	raw, err := c.request(ctx, "countries", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}

	var envelope countriesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode countries payload: %w", err)
	}

	out := make([]usecase.ExternalCountry, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, mapCountry(item))
	}
	return out, nil
}

func (c *Client) FetchLeagues(ctx context.Context) ([]usecase.ExternalLeague, error) {
	raw, err := c.request(ctx, "leagues", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}

	var envelope leaguesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode leagues payload: %w", err)
	}

	out := make([]usecase.ExternalLeague, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, mapLeague(item))
	}
	return out, nil
}

func (c *Client) FetchTeam(ctx context.Context, teamID int64) (usecase.ExternalTeamDetail, bool, error) {
	if teamID <= 0 {
		return usecase.ExternalTeamDetail{}, false, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	raw, err := c.request(ctx, "teams", map[string]string{"id": strconv.FormatInt(teamID, 10)})
	if err != nil {
		return usecase.ExternalTeamDetail{}, false, fmt.Errorf("fetch team id=%d: %w", teamID, err)
	}

	var envelope teamsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return usecase.ExternalTeamDetail{}, false, fmt.Errorf("decode team payload: %w", err)
	}
	if len(envelope.Response) == 0 {
		return usecase.ExternalTeamDetail{}, false, nil
	}

	return mapTeamDetail(envelope.Response[0]), true, nil
}

func (c *Client) FetchTeamsByLeagueSeason(ctx context.Context, leagueID int64, year int) ([]usecase.ExternalTeamDetail, error) {
	if leagueID <= 0 || year <= 0 {
		return nil, fmt.Errorf("%w: league id and season year are required", usecase.ErrInvalidInput)
	}

	raw, err := c.request(ctx, "teams", map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(year),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch teams league=%d season=%d: %w", leagueID, year, err)
	}

	var envelope teamsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode teams payload: %w", err)
	}

	out := make([]usecase.ExternalTeamDetail, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, mapTeamDetail(item))
	}
	return out, nil
}

func (c *Client) FetchPlayers(ctx context.Context, teamID int64, year int, page int) ([]usecase.ExternalPlayer, error) {
	if teamID <= 0 || year <= 0 {
		return nil, fmt.Errorf("%w: team id and season year are required", usecase.ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}

	raw, err := c.request(ctx, "players", map[string]string{
		"team":   strconv.FormatInt(teamID, 10),
		"season": strconv.Itoa(year),
		"page":   strconv.Itoa(page),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch players team=%d page=%d: %w", teamID, page, err)
	}

	var envelope playersEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode players payload: %w", err)
	}

	out := make([]usecase.ExternalPlayer, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, mapPlayer(item))
	}
	return out, nil
}

func (c *Client) FetchFixturesByDate(ctx context.Context, date time.Time) ([]usecase.ExternalFixture, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: fixture date is required", usecase.ErrInvalidInput)
	}

	params := map[string]string{"date": date.Format("2006-01-02")}
	if c.timezone != "" {
		params["timezone"] = c.timezone
	}

	raw, err := c.request(ctx, "fixtures", params)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures date=%s: %w", date.Format("2006-01-02"), err)
	}

	var envelope fixturesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode fixtures payload: %w", err)
	}

	out := make([]usecase.ExternalFixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, mapFixture(item))
	}
	return out, nil
}

// IsTransient reports whether err exhausted the retry budget on
// transient failures, as opposed to failing on a malformed request.
func IsTransient(err error) bool {
	return crerr.Is(err, errAPIFootballTransient)
}

func sanitizeSensitiveText(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	// Credentials travel in headers; strip query noise anyway.
	return parsed.Scheme + "://" + parsed.Host + parsed.Path
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
