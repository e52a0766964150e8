package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestVerifier(t *testing.T, success bool, score float64) *Verifier {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.FormValue("secret") != "test-secret" {
			t.Errorf("missing secret in form")
		}
		if r.FormValue("response") == "" {
			t.Errorf("missing response token in form")
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": success,
			"score":   score,
		})
	}))
	t.Cleanup(srv.Close)

	v := NewVerifier("test-secret", 0.5)
	if v == nil {
		t.Fatalf("expected configured verifier")
	}
	v.verifyURL = srv.URL
	return v
}

func TestVerifyAcceptsScoreAboveThreshold(t *testing.T) {
	v := newTestVerifier(t, true, 0.6)
	score, err := v.Verify(context.Background(), "token", "")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if score != 0.6 {
		t.Fatalf("unexpected score %v", score)
	}
}

func TestVerifyRejectsLowScoreEvenWhenValid(t *testing.T) {
	v := newTestVerifier(t, true, 0.4)
	score, err := v.Verify(context.Background(), "token", "")
	if !errors.Is(err, ErrLowScore) {
		t.Fatalf("expected ErrLowScore, got %v", err)
	}
	if score != 0.4 {
		t.Fatalf("score should be returned on rejection, got %v", score)
	}
}

func TestVerifyRejectsInvalidToken(t *testing.T) {
	v := newTestVerifier(t, false, 0.9)
	if _, err := v.Verify(context.Background(), "token", ""); !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	v := newTestVerifier(t, true, 0.9)
	if _, err := v.Verify(context.Background(), "", ""); !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}
