package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"go.uber.org/zap"
)

type Pushover struct {
	logger *zap.Logger
	user   string
	token  string
	device string
}

func NewPushover(logger *zap.Logger, user, token, device string) *Pushover {
	return &Pushover{
		logger: logger,
		user:   user,
		token:  token,
		device: device,
	}
}

func (p *Pushover) WithExceedance(handler bus.ExceedanceEventHandler) bus.ExceedanceEventHandler {
	return func(ctx context.Context, exceedance common.Exceedance) {
		go func() {
			msg := fmt.Sprintf("symbol = %s\nreturn = %.4f\nvar = %.4f",
				exceedance.Symbol, exceedance.Return, exceedance.VaR)
			if err := sendPushoverNotification(ctx, p.token, p.user, p.device, "VaR Breach", msg); err != nil {
				p.logger.Error("sendPushoverNotification", zap.Error(err))
			}
		}()
		handler(ctx, exceedance)
	}
}

func sendPushoverNotification(ctx context.Context, token, user, device, title, message string) error {
	data := url.Values{}
	data.Set("token", token)
	data.Set("user", user)
	data.Set("device", device)
	data.Set("title", title)
	data.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.pushover.net/1/messages.json", strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("pushover post failed: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pushover error: %s", body)
	}

	return nil
}
