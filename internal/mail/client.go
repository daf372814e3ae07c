package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Resend邮件API基础地址
const baseURL = "https://api.resend.com"

// Client Resend邮件客户端
// A nil or keyless client is valid and reports Enabled() == false, so callers
// can skip notification sends in environments without mail credentials.
type Client struct {
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewClient 创建邮件客户端实例
func NewClient(apiKey, fromName, fromEmail string) *Client {
	return &Client{
		apiKey: apiKey,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send 发送邮件
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(sendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail API error [%d]: %s", resp.StatusCode, msg)
	}
	return nil
}

// SendRequestApproved 发送租借批准通知
func (c *Client) SendRequestApproved(ctx context.Context, to, itemName string, quantity int, start, end time.Time) error {
	subject := fmt.Sprintf("Your equipment request for %s was approved", itemName)
	html := fmt.Sprintf(
		`<p>Good news! Your request has been <strong>approved</strong>.</p>
<p>Item: %s<br>Quantity: %d<br>Rental period: %s to %s</p>
<p>Please pick up the equipment at the start of your rental period.</p>`,
		itemName, quantity, start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	return c.Send(ctx, to, subject, html)
}

// SendRequestDenied 发送租借拒绝通知
func (c *Client) SendRequestDenied(ctx context.Context, to, itemName string, quantity int, start, end time.Time, reason string) error {
	subject := fmt.Sprintf("Your equipment request for %s was denied", itemName)
	html := fmt.Sprintf(
		`<p>Unfortunately your request has been <strong>denied</strong>.</p>
<p>Item: %s<br>Quantity: %d<br>Rental period: %s to %s</p>
<p>Reason: %s</p>`,
		itemName, quantity, start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"), reason)
	return c.Send(ctx, to, subject, html)
}
