package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const fast2smsURL = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMS sends OTP messages through the Fast2SMS bulk API.
type Fast2SMS struct {
	apiKey     string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewFast2SMS constructs a Fast2SMS sender. With an empty API key the
// sender logs the code locally instead of calling the gateway, which keeps
// development environments working without credentials.
func NewFast2SMS(apiKey string, logger *zap.SugaredLogger) *Fast2SMS {
	return &Fast2SMS{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type fast2smsPayload struct {
	Route           string `json:"route"`
	VariablesValues string `json:"variables_values"`
	Numbers         string `json:"numbers"`
}

// Send dispatches the code over the OTP route.
func (s *Fast2SMS) Send(ctx context.Context, mobile, code string) error {
	if s.apiKey == "" {
		s.logger.Infow("SMS gateway not configured, skipping dispatch", "mobile", mobile)
		return nil
	}

	body, err := json.Marshal(fast2smsPayload{
		Route:           "otp",
		VariablesValues: code,
		Numbers:         mobile,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fast2smsURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
