// ABOUTME: Response wrapper returned by Fetch
// ABOUTME: Closing is idempotent and the request URL never carries credentials

package standard

import (
	"io"
	"net/http"
	"sync"
)

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	headers    http.Header
	body       *onceCloser
	requestURL string
}

func newResponse(resp *http.Response, fallbackURL string) *httpResponse {
	requestURL := fallbackURL
	if resp.Request != nil && resp.Request.URL != nil {
		u := *resp.Request.URL
		u.User = nil
		requestURL = u.String()
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		headers:    resp.Header,
		body:       &onceCloser{ReadCloser: resp.Body},
		requestURL: requestURL,
	}
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

// RequestURL returns the final request URL, credentials removed
func (r *httpResponse) RequestURL() string {
	return r.requestURL
}

// Close closes the body once
func (r *httpResponse) Close() error {
	return r.body.Close()
}

type onceCloser struct {
	io.ReadCloser
	once sync.Once
	err  error
}

func (o *onceCloser) Close() error {
	o.once.Do(func() {
		o.err = o.ReadCloser.Close()
	})
	return o.err
}
