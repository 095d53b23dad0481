package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// APIError represents a backend error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("archive: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// errorBody is the backend's error envelope. Older endpoints use
// "error", newer ones "message".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorFrom builds an error from a non-2xx response and maps it onto
// the domain sentinels the services match on.
func (c *Client) errorFrom(resp *http.Response, public bool) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		URL:        resp.Request.URL.String(),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var envelope errorBody
		if json.Unmarshal(body, &envelope) == nil {
			if envelope.Message != "" {
				apiErr.Message = envelope.Message
			} else if envelope.Error != "" {
				apiErr.Message = envelope.Error
			}
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	case http.StatusUnauthorized:
		if public {
			return fmt.Errorf("%w: %w", domain.ErrBadCredentials, apiErr)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, apiErr)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrForbidden, apiErr)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, apiErr)
	}
	return apiErr
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsUnauthorized checks if the error indicates an expired or missing
// session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

// IsRateLimited checks if the error indicates throttling.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
