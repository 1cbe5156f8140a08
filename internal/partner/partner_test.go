package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/lookup"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/mapper"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func readBody(t *testing.T, req *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func listing() models.RawListing {
	return models.RawListing{
		URL:            "https://www.recruityard.com/find-jobs-all/agent-in-lisbon-pt",
		Title:          "Customer Agent",
		Description:    "<p>Answer calls.</p>",
		Reference:      "RY-7",
		Country:        "PT",
		Region:         "Lisbon",
		EmploymentType: "FULL_TIME",
		Industry:       "Customer Service",
		Salary:         "1050 - 1300",
	}
}

func sapoMapper() *mapper.Mapper {
	tables := lookup.Tables{
		lookup.Country:      {"portugal": 620},
		lookup.District:     {"lisboa": 11},
		lookup.ScheduleType: {"full-time": 1},
		lookup.SalaryRange:  {"de 15.000€ a 25.000€": 2},
	}
	now := func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
	return mapper.New(tables, mapper.Options{ApplyEmail: "info@recruityard.com", UTMSource: "SAPO_Emprego", Now: now})
}

func TestSapoSubmitPostsOffer(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			req.URL.String() == "https://api.example.com/SAPOEmprego/offers.add" &&
			req.Header.Get("X-API-TOKEN") == "secret" &&
			req.Header.Get("Content-Type") == "application/json"
	})).Run(func(args mock.Arguments) {
		body := readBody(t, args.Get(0).(*http.Request))
		assert.Equal(t, "RY-7", body["reference"])
		assert.Equal(t, float64(620), body["country_id"])
		assert.Equal(t, float64(2), body["annual_salary_range_id"])
		assert.Equal(t, "Answer calls.", body["offer_description"])
		assert.Contains(t, body["description"], `href="https://www.recruityard.com/find-jobs-all/agent-in-lisbon-pt?id=RY-7&utm_source=SAPO_Emprego"`)
	}).Return(jsonResponse(http.StatusCreated, `{"status":"ok"}`), nil)

	sapo := NewSapo("https://api.example.com/SAPOEmprego/", "secret")
	sapo.SetHTTPClient(mockClient)
	sapo.SetMapper(sapoMapper())

	payload, err := sapo.BuildPayload(listing())
	require.NoError(t, err)
	assert.Equal(t, "RY-7", payload.Reference)
	assert.Equal(t, "Customer Agent", payload.Title)

	resp, err := sapo.Submit(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, resp.Accepted())
	assert.Equal(t, `{"status":"ok"}`, resp.Body)
	mockClient.AssertExpectations(t)
}

func TestSapoBuildPayloadRejectsUnresolvedFields(t *testing.T) {
	sapo := NewSapo("", "secret")
	sapo.SetMapper(sapoMapper())

	raw := listing()
	raw.Salary = "undisclosed"
	_, err := sapo.BuildPayload(raw)

	var missing *mapper.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"annual_salary_range_id"}, missing.Fields)
}

func TestSapoRemove(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/offers.remove")
	})).Run(func(args mock.Arguments) {
		body := readBody(t, args.Get(0).(*http.Request))
		assert.Equal(t, map[string]any{"reference": "RY-7"}, body)
	}).Return(jsonResponse(http.StatusOK, `{}`), nil)

	sapo := NewSapo("", "secret")
	sapo.SetHTTPClient(mockClient)

	resp, err := sapo.Remove(context.Background(), "RY-7")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockClient.AssertExpectations(t)
}

func TestSapoSubmitTransportError(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection reset"))

	sapo := NewSapo("", "secret")
	sapo.SetHTTPClient(mockClient)

	_, err := sapo.Submit(context.Background(), Payload{Body: map[string]string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSapoReferenceAsLookupSource(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/countries.list")
	})).Return(jsonResponse(http.StatusOK, `{"total": 2, "data": [{"id": 620, "name": "Portugal"}, {"id": "724", "code": "Espanha"}]}`), nil)
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return strings.HasSuffix(req.URL.Path, "/districts.list")
	})).Return(jsonResponse(http.StatusOK, `{"data": {"error": "nope"}}`), nil)
	mockClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusUnauthorized, `denied`), nil)

	sapo := NewSapo("", "secret")
	sapo.SetHTTPClient(mockClient)

	items, err := sapo.Reference(context.Background(), "/countries.list")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "620", items[0].ID.String())
	assert.Equal(t, "Espanha", items[1].Code.String())

	_, err = sapo.Reference(context.Background(), "/districts.list")
	assert.ErrorContains(t, err, "data is not a list")

	_, err = sapo.Reference(context.Background(), "/workHours.list")
	assert.ErrorContains(t, err, "status 401")

	var src lookup.Source = sapo
	assert.NotNil(t, src)
}

func TestFeedSubmitAndRemove(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost && req.URL.String() == "https://feed.example.com/v1/jobs"
	})).Run(func(args mock.Arguments) {
		req := args.Get(0).(*http.Request)
		assert.Equal(t, "Bearer feed-token", req.Header.Get("Authorization"))
		body := readBody(t, req)
		assert.Equal(t, "portugal", body["country"])
		assert.Equal(t, "lisboa", body["region"])
		assert.Equal(t, "de 15.000€ a 25.000€", body["salary_band"])
		assert.Equal(t, "Answer calls.", body["description"])
	}).Return(jsonResponse(http.StatusCreated, `{"id": 1}`), nil)
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodDelete && req.URL.EscapedPath() == "/v1/jobs/RY%2F7"
	})).Return(jsonResponse(http.StatusTooManyRequests, `slow down`), nil)

	feed := NewFeed("https://feed.example.com/v1", "feed-token")
	feed.SetHTTPClient(mockClient)

	payload, err := feed.BuildPayload(listing())
	require.NoError(t, err)

	resp, err := feed.Submit(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, resp.Accepted())

	resp, err = feed.Remove(context.Background(), "RY/7")
	require.NoError(t, err)
	assert.True(t, resp.Throttled())
	mockClient.AssertExpectations(t)
}

func TestFeedBuildPayloadRequiresApplyURL(t *testing.T) {
	raw := listing()
	raw.URL = ""

	_, err := NewFeed("https://feed.example.com", "t").BuildPayload(raw)

	var missing *mapper.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"apply_url"}, missing.Fields)
}
