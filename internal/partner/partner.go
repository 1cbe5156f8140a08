// Package partner holds the clients of the job boards listings are
// published to.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

const (
	NameSapo = "sapo"
	NameFeed = "feed"
)

// Adapter publishes mapped listings to one partner.
type Adapter interface {
	Name() string
	// BuildPayload maps and validates listing. A *mapper.MissingFieldsError
	// means the listing must not be submitted.
	BuildPayload(listing models.RawListing) (Payload, error)
	Submit(ctx context.Context, payload Payload) (Response, error)
	Remove(ctx context.Context, reference string) (Response, error)
}

// Payload is a validated request body plus the fields used for reporting.
type Payload struct {
	Reference string
	Title     string
	Body      any
}

// Response is a partner answer. Transport failures never produce one.
type Response struct {
	StatusCode int
	Body       string
}

func (r Response) Accepted() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated
}

func (r Response) Throttled() bool {
	return r.StatusCode == http.StatusTooManyRequests
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Names lists the partners an adapter exists for.
func Names() []string {
	return []string{NameSapo, NameFeed}
}

type client struct {
	baseURL    string
	httpClient HTTPClient
	authorize  func(req *http.Request)
}

func newClient(baseURL string, authorize func(req *http.Request)) client {
	return client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		authorize:  authorize,
	}
}

func (c *client) send(ctx context.Context, method, path string, body any) (Response, error) {
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			return Response{}, errors.Wrap(err, "encode request body")
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response{}, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorize != nil {
		c.authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, errors.Wrap(err, "read response body")
	}
	return Response{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}, nil
}
