package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends an email with the specified subject and body
// Throttles requests to respect Gmail API rate limits
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if err := c.throttle(ctx); err != nil {
		return err
	}

	gmailMessage := &gmail.Message{
		Raw: encodeMessage(c.sender, to, subject, body),
	}

	_, err := c.service.Users.Messages.Send("me", gmailMessage).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// throttle waits until the send interval has passed since the previous email
func (c *Client) throttle(ctx context.Context) error {
	if c.lastSendTime.IsZero() {
		return nil
	}

	elapsed := time.Since(c.lastSendTime)
	if elapsed >= c.interval {
		return nil
	}

	timer := time.NewTimer(c.interval - elapsed)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email throttle interrupted: %w", ctx.Err())
	}
}

// encodeMessage builds an RFC 2822 message encoded for the Gmail API
func encodeMessage(from, to, subject, body string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
