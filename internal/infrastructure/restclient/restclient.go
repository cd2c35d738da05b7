// Package restclient holds the resty plumbing shared by the search provider clients.
package restclient

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures New
type Options struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
}

// New creates a resty client for a JSON API
func New(opts Options) *resty.Client {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "OshiLens/1.0",
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeaders(headers)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return client
}

// StatusError is returned for responses with a status code above 399
type StatusError struct {
	Method string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s %s (status: %d)", e.Method, e.URL, e.Status)
}

// HandleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func HandleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, &StatusError{Method: res.Request.Method, URL: res.Request.URL, Status: res.StatusCode()}
	}
	return res, nil
}
