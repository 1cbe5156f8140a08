package partner

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/lookup"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/mapper"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

const SandboxBaseURL = "https://qa.services.telecom.pt/SAPOEmprego"

// Sapo is the SAPO Emprego client. It also serves the reference lists the
// lookup tables are built from.
type Sapo struct {
	client
	mapper *mapper.Mapper
}

func NewSapo(baseURL, token string) *Sapo {
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}
	return &Sapo{
		client: newClient(baseURL, func(req *http.Request) {
			req.Header.Set("X-API-TOKEN", token)
		}),
		mapper: mapper.New(nil, mapper.Options{}),
	}
}

func (s *Sapo) SetHTTPClient(httpClient HTTPClient) {
	s.httpClient = httpClient
}

// SetMapper installs the mapper built from the lookup tables.
func (s *Sapo) SetMapper(m *mapper.Mapper) {
	s.mapper = m
}

func (s *Sapo) Name() string {
	return NameSapo
}

func (s *Sapo) BuildPayload(listing models.RawListing) (Payload, error) {
	offer := s.mapper.Offer(listing)
	payload := Payload{Reference: offer.Reference, Title: offer.Title, Body: offer}
	if err := mapper.Validate(offer); err != nil {
		return payload, err
	}
	return payload, nil
}

func (s *Sapo) Submit(ctx context.Context, payload Payload) (Response, error) {
	return s.send(ctx, http.MethodPost, "/offers.add", payload.Body)
}

func (s *Sapo) Remove(ctx context.Context, reference string) (Response, error) {
	return s.send(ctx, http.MethodPost, "/offers.remove", map[string]string{"reference": reference})
}

type referenceResponse struct {
	Data json.RawMessage `json:"data"`
}

// Reference fetches one reference list. Both {"data": [...]} and
// {"total": N, "data": [...]} bodies are accepted.
func (s *Sapo) Reference(ctx context.Context, path string) ([]lookup.Item, error) {
	resp, err := s.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s: status %d: %s", path, resp.StatusCode, resp.Body)
	}

	var body referenceResponse
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		return nil, errors.Wrapf(err, "%s: decode response", path)
	}
	var items []lookup.Item
	if err := json.Unmarshal(body.Data, &items); err != nil {
		return nil, errors.Wrapf(err, "%s: data is not a list", path)
	}
	return items, nil
}
