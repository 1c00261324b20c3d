package messageservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging interface used by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client sends templated notification messages through the external message
// service (KakaoTalk/SMS gateway).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a message service client.
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendTemplate sends one templated message to a phone number.
func (c *Client) SendTemplate(ctx context.Context, req *SendTemplateRequest) error {
	url := fmt.Sprintf("%s/v1/messages/template", c.baseURL)

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusBadRequest:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, string(body))
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limited", ErrUnavailable)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
}

// SendLowBalanceAlert sends the low-balance template. Delivery is best
// effort: callers treat ErrUnavailable as retryable and anything else as
// permanent.
func (c *Client) SendLowBalanceAlert(ctx context.Context, phoneNumber, customerName, ticketName string, remainingCount int) error {
	c.log.Info("Sending low balance alert to %s (ticket=%s, remaining=%d)", phoneNumber, ticketName, remainingCount)

	return c.SendTemplate(ctx, &SendTemplateRequest{
		TemplateCode: TemplateLowBalance,
		PhoneNumber:  phoneNumber,
		Variables: map[string]string{
			"customer_name":   customerName,
			"ticket_name":     ticketName,
			"remaining_count": fmt.Sprintf("%d", remainingCount),
		},
	})
}
