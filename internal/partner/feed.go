package partner

import (
	"context"
	"net/http"
	"net/url"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/mapper"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

// Feed is the secondary partner: a bearer-token JSON API that takes plain
// text descriptions and vocabulary labels instead of lookup ids.
type Feed struct {
	client
	mapper *mapper.Mapper
}

func NewFeed(baseURL, token string) *Feed {
	return &Feed{
		client: newClient(baseURL, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		}),
		mapper: mapper.New(nil, mapper.Options{}),
	}
}

func (f *Feed) SetHTTPClient(httpClient HTTPClient) {
	f.httpClient = httpClient
}

func (f *Feed) SetMapper(m *mapper.Mapper) {
	f.mapper = m
}

func (f *Feed) Name() string {
	return NameFeed
}

func (f *Feed) BuildPayload(listing models.RawListing) (Payload, error) {
	job := f.mapper.FeedJob(listing)
	payload := Payload{Reference: job.Reference, Title: job.Title, Body: job}
	if err := mapper.Validate(job); err != nil {
		return payload, err
	}
	return payload, nil
}

func (f *Feed) Submit(ctx context.Context, payload Payload) (Response, error) {
	return f.send(ctx, http.MethodPost, "/jobs", payload.Body)
}

func (f *Feed) Remove(ctx context.Context, reference string) (Response, error) {
	return f.send(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(reference), nil)
}
