package safebrowsing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/uni-3/my-url-shortener/internal/shortener"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"
	defaultTimeout  = 3 * time.Second

	clientID      = "my-url-shortener"
	clientVersion = "1.0.0"
)

var threatTypes = []string{
	"MALWARE",
	"SOCIAL_ENGINEERING",
	"UNWANTED_SOFTWARE",
	"POTENTIALLY_HARMFUL_APPLICATION",
}

type threatEntry struct {
	URL string `json:"url"`
}

type findRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string      `json:"threatTypes"`
		PlatformTypes    []string      `json:"platformTypes"`
		ThreatEntryTypes []string      `json:"threatEntryTypes"`
		ThreatEntries    []threatEntry `json:"threatEntries"`
	} `json:"threatInfo"`
}

type findResponse struct {
	Matches []struct {
		ThreatType string `json:"threatType"`
	} `json:"matches"`
}

// Client checks URLs against the Google Safe Browsing v4 Lookup API.
//
// The check is fail-open: any failure to complete it (missing key, transport
// error, timeout, non-200 response, bad body) yields a safe verdict with a
// warning logged, so gate availability never blocks shortening.
type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates a Safe Browsing client. An empty apiKey disables the
// check entirely (every URL passes).
func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		timeout:    defaultTimeout,
		logger:     logger,
	}
}

// CheckURL implements shortener.Gate.
func (c *Client) CheckURL(ctx context.Context, url string) shortener.Verdict {
	safe := shortener.Verdict{Safe: true}

	if c.apiKey == "" {
		c.logger.Warn("safe browsing api key not set, skipping safety check")

		return safe
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := findRequest{}
	body.Client.ClientID = clientID
	body.Client.ClientVersion = clientVersion
	body.ThreatInfo.ThreatTypes = threatTypes
	body.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	body.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	body.ThreatInfo.ThreatEntries = []threatEntry{{URL: url}}

	payload, err := json.Marshal(body)
	if err != nil {
		c.logger.Warn("safe browsing request marshal failed, allowing url", zap.Error(err))

		return safe
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("safe browsing request build failed, allowing url", zap.Error(err))

		return safe
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("safe browsing check failed, allowing url", zap.Error(err))

		return safe
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("safe browsing api error, allowing url",
			zap.Int("status", resp.StatusCode),
		)

		return safe
	}

	var result findResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn("safe browsing response decode failed, allowing url", zap.Error(err))

		return safe
	}

	if len(result.Matches) > 0 {
		return shortener.Verdict{
			Safe:       false,
			ThreatType: result.Matches[0].ThreatType,
		}
	}

	return safe
}

// Compile-time check.
var _ shortener.Gate = (*Client)(nil)
