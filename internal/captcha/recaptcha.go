package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	ErrVerificationFailed = errors.New("captcha verification failed")
	ErrLowScore           = errors.New("captcha score below threshold")
)

type Verifier struct {
	secret     string
	threshold  float64
	verifyURL  string
	httpClient *http.Client
}

func NewVerifier(secret string, threshold float64) *Verifier {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	return &Verifier{
		secret:     secret,
		threshold:  threshold,
		verifyURL:  defaultVerifyURL,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the client token against the verification API. The score is
// returned even when the token is rejected so callers can log it.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (float64, error) {
	if v == nil {
		return 0, errors.New("captcha verifier not configured")
	}
	if strings.TrimSpace(token) == "" {
		return 0, ErrVerificationFailed
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("captcha request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("captcha request failed: status=%d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("captcha decode: %w", err)
	}

	if !out.Success {
		return out.Score, ErrVerificationFailed
	}
	if out.Score < v.threshold {
		return out.Score, ErrLowScore
	}
	return out.Score, nil
}
