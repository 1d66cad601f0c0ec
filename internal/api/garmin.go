package api

import (
	"context"
	"encoding/json"
	"fmt"
	"golf-journey/internal/config"
	"golf-journey/internal/constants"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// GarminClient fetches scorecard documents from the Garmin Connect golf
// community API with a pre-issued bearer token.
type GarminClient struct {
	token   string
	baseURL string
	client  *fasthttp.Client
	limiter *rate.Limiter

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	// requests per second allowed by the local limiter
	Limit float64 `json:"limit" yaml:"limit"`

	Throttled  int           `json:"throttled" yaml:"throttled"`
	RetryAfter time.Duration `json:"retry_after" yaml:"retry_after"`
	LastStatus int           `json:"last_status" yaml:"last_status"`
	UpdatedAt  time.Time     `json:"updated_at" yaml:"updated_at"`
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("garmin API error: %d (%s)", e.StatusCode, e.URL)
}

func NewGarminClient(cfg *config.Config) *GarminClient {
	return &GarminClient{
		token:   cfg.GarminAPIToken,
		baseURL: cfg.GarminBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     constants.GarminFetchConcurrency * 2,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.GarminRateLimit), constants.GarminRateBurst),
		rateLimit: RateLimitInfo{
			Limit:     cfg.GarminRateLimit,
			UpdatedAt: time.Now(),
		},
	}
}

// HasToken reports whether a bearer token was configured.
func (c *GarminClient) HasToken() bool {
	return c.token != ""
}

func (c *GarminClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *GarminClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	c.rateLimit.LastStatus = resp.StatusCode()
	if resp.StatusCode() == fasthttp.StatusTooManyRequests {
		c.rateLimit.Throttled++
		if retry := string(resp.Header.Peek(fasthttp.HeaderRetryAfter)); retry != "" {
			if val, err := strconv.Atoi(retry); err == nil {
				c.rateLimit.RetryAfter = time.Duration(val) * time.Second
			}
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *GarminClient) GetScorecardDetail(ctx context.Context, scorecardID int64) (*ScorecardDetailResponse, error) {
	url := fmt.Sprintf("%s/gcs-golfcommunity/api/v2/scorecard/detail?scorecard-ids=%d&include-next-previous-ids=true&user-locale=en",
		c.baseURL, scorecardID)
	return doRequest[ScorecardDetailResponse](ctx, c, url)
}

func doRequest[T any](ctx context.Context, client *GarminClient, url string) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+client.token)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set("NK", "NT")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode(), URL: url}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
