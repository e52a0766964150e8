package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DecodeJSON decodes a single JSON object, rejecting unknown fields and
// trailing content so malformed admin payloads fail loudly.
func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("invalid value for field %q", typeErr.Field)
		}
		return err
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// ValidationDetails renders field errors as a details map for the error
// envelope. Parameterized tags keep their argument, e.g. "min=8".
func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		details[fe.Field()] = tag
	}
	return details
}

// ParseLimitOffset reads the paging query params shared by the list
// endpoints, clamping limit to maxLimit.
func ParseLimitOffset(values url.Values, defaultLimit, maxLimit int64) (int64, int64, error) {
	limit, err := parsePositive(values.Get("limit"), defaultLimit, 1)
	if err != nil {
		return 0, 0, errors.New("invalid limit")
	}
	offset, err := parsePositive(values.Get("offset"), 0, 0)
	if err != nil {
		return 0, 0, errors.New("invalid offset")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, offset, nil
}

func parsePositive(raw string, fallback, floor int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed < floor {
		return 0, errors.New("out of range")
	}
	return parsed, nil
}
