package httpx

import (
	"net/url"
	"strings"
	"testing"

	"academy-backend/internal/validation"
)

func TestDecodeJSONRejectsUnknownFieldsAndTrailingContent(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	if err := DecodeJSON(strings.NewReader(`{"name":"x"}`), &dst); err != nil {
		t.Fatalf("valid body: %v", err)
	}
	if dst.Name != "x" {
		t.Fatalf("name = %q", dst.Name)
	}

	if err := DecodeJSON(strings.NewReader(`{"name":"x","bogus":1}`), &dst); err == nil {
		t.Fatalf("unknown field accepted")
	}
	if err := DecodeJSON(strings.NewReader(`{"name":"x"}{"name":"y"}`), &dst); err == nil {
		t.Fatalf("trailing object accepted")
	}
}

func TestDecodeJSONNamesMistypedField(t *testing.T) {
	var dst struct {
		Count int `json:"count"`
	}
	err := DecodeJSON(strings.NewReader(`{"count":"three"}`), &dst)
	if err == nil {
		t.Fatalf("mistyped field accepted")
	}
	if !strings.Contains(err.Error(), "count") {
		t.Fatalf("error does not name the field: %v", err)
	}
}

func TestValidationDetailsKeepsTagParam(t *testing.T) {
	val := validation.New()
	req := struct {
		Password string `validate:"required,min=8"`
	}{Password: "short"}

	err := val.Struct(req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	details := ValidationDetails(val.ValidationErrors(err))
	if details["Password"] != "min=8" {
		t.Fatalf("details = %v, want Password=min=8", details)
	}
}

func TestParseLimitOffsetDefaultsAndClamping(t *testing.T) {
	limit, offset, err := ParseLimitOffset(url.Values{}, 50, 100)
	if err != nil || limit != 50 || offset != 0 {
		t.Fatalf("defaults = %d/%d (%v)", limit, offset, err)
	}

	limit, _, err = ParseLimitOffset(url.Values{"limit": {"500"}}, 50, 100)
	if err != nil || limit != 100 {
		t.Fatalf("clamp = %d (%v), want 100", limit, err)
	}

	if _, _, err := ParseLimitOffset(url.Values{"limit": {"0"}}, 50, 100); err == nil {
		t.Fatalf("limit=0 accepted")
	}
	if _, _, err := ParseLimitOffset(url.Values{"offset": {"-1"}}, 50, 100); err == nil {
		t.Fatalf("negative offset accepted")
	}
}
