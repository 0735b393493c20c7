// Package practicum queries the Practicum homework review API.
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

const statusesPath = "/user_api/homework_statuses/"

// ErrEndpointUnavailable is returned when the endpoint answers with anything but 200 OK.
var ErrEndpointUnavailable = errors.New("homework API endpoint unavailable")

// Client issues homework status requests with an OAuth token.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	logger   *logrus.Entry
	now      func() time.Time
}

func NewClient(baseURL, token string, httpc *http.Client, logger *logrus.Entry) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		endpoint: baseURL + statusesPath,
		token:    token,
		httpc:    httpc,
		logger:   logger,
		now:      time.Now,
	}
}

// Endpoint returns the full URL the client queries.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetAPIAnswer fetches status changes since from (unix seconds). A zero from means "now".
func (c *Client) GetAPIAnswer(ctx context.Context, from int64) (*homework.Response, error) {
	if from == 0 {
		from = c.now().Unix()
	}

	q := url.Values{}
	q.Set("from_date", strconv.FormatInt(from, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", c.endpoint, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"endpoint":    c.endpoint,
			"status_code": res.StatusCode,
		}).Error("Endpoint is unavailable")
		return nil, fmt.Errorf("%w: %s returned %d", ErrEndpointUnavailable, c.endpoint, res.StatusCode)
	}

	var resp homework.Response
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", c.endpoint, err)
	}
	return &resp, nil
}
