package lens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"lensoracle/internal/domain"
	"lensoracle/internal/host"
)

const (
	DefaultEndpoint  = "https://api-mumbai.lens.dev"
	DefaultUserAgent = "phat-contract"
	DefaultTimeout   = 10 * time.Second
)

const profileQuery = `query Profile {
  profile(request: { profileId: %s }) {
    stats {
      totalFollowers
      totalFollowing
      totalPosts
      totalComments
      totalMirrors
      totalPublications
      totalCollects
    }
  }
}`

type Config struct {
	Endpoint  string        `koanf:"endpoint"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

// Client fetches profile stats from the Lens GraphQL API through the host's
// batched HTTP primitive. Every call issues exactly one request.
type Client struct {
	host   host.Requester
	cfg    Config
	logger *zap.Logger
}

func NewClient(h host.Requester, cfg Config, logger *zap.Logger) *Client {
	return &Client{
		host:   h,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Client) FetchStats(ctx context.Context, settings, profileID string) (*domain.Stats, error) {
	body, err := buildQuery(profileID)
	if err != nil {
		return nil, domain.NewError(domain.FailedToFetchData, err)
	}

	endpoint := c.endpoint(settings)
	results, err := c.host.BatchHTTPRequest(ctx, []host.Request{{
		URL:    endpoint,
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   c.cfg.UserAgent,
		},
		Body:           hexutil.Encode(body),
		ReturnTextBody: true,
	}}, c.cfg.Timeout)
	if err != nil {
		return nil, domain.NewError(domain.FailedToFetchData, err)
	}
	if len(results) != 1 {
		return nil, domain.Errorf(domain.FailedToFetchData, "host returned %d results for 1 request", len(results))
	}

	resp := results[0]
	if resp.StatusCode != http.StatusOK {
		detail := resp.Error
		if detail == "" {
			detail = string(resp.Body)
		}
		c.logger.Warn("fail to read Lens api",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("error", detail))
		return nil, domain.Errorf(domain.FailedToFetchData, "HTTP %d: %s", resp.StatusCode, detail)
	}
	if !resp.Text {
		return nil, domain.Errorf(domain.FailedToDecode, "response body is not text")
	}

	return parseStats(resp.Body)
}

// endpoint prefers an absolute http(s) URL given in settings over the
// configured endpoint.
func (c *Client) endpoint(settings string) string {
	s := strings.TrimSpace(settings)
	if s == "" {
		return c.cfg.Endpoint
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.logger.Warn("ignoring settings, not an API url", zap.String("settings", s))
		return c.cfg.Endpoint
	}
	return s
}

func buildQuery(profileID string) ([]byte, error) {
	literal, err := json.Marshal(profileID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{
		"query": fmt.Sprintf(profileQuery, literal),
	})
}

var errNoStats = errors.New("profile stats missing from response")

func parseStats(body []byte) (*domain.Stats, error) {
	var payload struct {
		Data struct {
			Profile *struct {
				Stats *domain.Stats `json:"stats"`
			} `json:"profile"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewError(domain.FailedToDecode, err)
	}
	if payload.Data.Profile == nil || payload.Data.Profile.Stats == nil {
		return nil, domain.NewError(domain.FailedToDecode, errNoStats)
	}
	return payload.Data.Profile.Stats, nil
}
