package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal"
	"portfolio/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testConfig() config.Config {
	return config.Config{
		APIBaseURL:      "https://example.test/api",
		APITimeoutMs:    2000,
		APIRateLimitRPS: 1000,
		APIMaxAttempts:  3,
	}
}

func newTestClient(cfg config.Config) *Client {
	client := NewClient(cfg)
	client.backoffBase = time.Millisecond
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGetProjectsRetriesRetryableStatus(t *testing.T) {
	attempt := 0

	client := newTestClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/api/projects/" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("limit"); got != "12" {
				t.Fatalf("limit=%q", got)
			}
			if r.URL.Query().Has("page") {
				t.Fatalf("page should be omitted when unset")
			}
			attempt++
			if attempt == 1 {
				return jsonResponse(http.StatusServiceUnavailable, `{"error":"boom"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"results":[{"id":1,"title":"One"},{"id":2,"title":"Two"}],"count":7,"page":1,"page_size":12}`), nil
		}),
	}

	resp, err := client.GetProjects(context.Background(), internal.ProjectsQueryParams{Limit: 12})
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 {
		t.Fatalf("attempts=%d", attempt)
	}
	if len(resp.Projects) != 2 || resp.Total != 7 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGetProjectsFallsBackWithoutTrailingSlash(t *testing.T) {
	var paths []string

	client := newTestClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			paths = append(paths, r.URL.Path)
			if strings.HasSuffix(r.URL.Path, "/") {
				return nil, errors.New("connection reset")
			}
			return jsonResponse(http.StatusOK, `[{"id":"a"}]`), nil
		}),
	}

	resp, err := client.GetProjects(context.Background(), internal.ProjectsQueryParams{Search: "shop"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/projects/", "/api/projects"}, paths)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "a", resp.Projects[0].ID)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, internal.DefaultProjectsLimit, resp.Limit)
}

func TestGetProjectsReturnsFallbackOnFailure(t *testing.T) {
	client := newTestClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadRequest, `nope`), nil
		}),
	}

	params := internal.ProjectsQueryParams{Page: 2, Limit: 50}
	resp, err := client.GetProjects(context.Background(), params)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, FallbackResponse(params), resp)
}

func TestGetProjectsInvalidJSON(t *testing.T) {
	client := newTestClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `<!doctype html>`), nil
		}),
	}

	resp, err := client.GetProjects(context.Background(), internal.ProjectsQueryParams{})
	require.Error(t, err)
	assert.Empty(t, resp.Projects)
	assert.Equal(t, 1, resp.Page)
}

func TestGetProjectsQueryParameters(t *testing.T) {
	client := newTestClient(testConfig())
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponderWithQuery(http.MethodGet, "https://example.test/api/projects/",
		map[string]string{"page": "2", "limit": "5", "technology": "Go", "search": "магазин"},
		httpmock.NewStringResponder(http.StatusOK, `{"projects":[{"id":"go-shop","technologies":"Go"}],"total":11,"page":2,"limit":5}`))

	resp, err := client.GetProjects(context.Background(), internal.ProjectsQueryParams{
		Page: 2, Limit: 5, Technology: "Go", Search: "магазин",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, resp.Total)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, []string{"Go"}, resp.Projects[0].Technologies)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetProject(t *testing.T) {
	client := newTestClient(testConfig())
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, "https://example.test/api/projects/p-1/",
		httpmock.NewStringResponder(http.StatusOK, `{"uuid":"p-1","name":"Landing","preview_image":"/m/p.png"}`))

	project, err := client.GetProject(context.Background(), " p-1 ")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "p-1", project.ID)
	assert.Equal(t, "Landing", project.Title)
	assert.Equal(t, "https://example.test/m/p.png", project.PreviewImage)
}

func TestGetProjectNotFound(t *testing.T) {
	client := newTestClient(testConfig())
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, "https://example.test/api/projects/missing/",
		httpmock.NewStringResponder(http.StatusNotFound, `{"detail":"Not found."}`))

	project, err := client.GetProject(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, project)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetProjectTriesAlternateURL(t *testing.T) {
	cfg := testConfig()
	cfg.APIMaxAttempts = 1
	client := newTestClient(cfg)
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, "https://example.test/api/projects/7/",
		httpmock.NewStringResponder(http.StatusInternalServerError, `oops`))
	httpmock.RegisterResponder(http.MethodGet, "https://example.test/api/projects/7",
		httpmock.NewStringResponder(http.StatusOK, `{"id":7}`))

	project, err := client.GetProject(context.Background(), "7")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "7", project.ID)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET https://example.test/api/projects/7/"])
	assert.Equal(t, 1, info["GET https://example.test/api/projects/7"])
}

func TestGetProjectDevModeOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Dev = true
	client := newTestClient(cfg)

	var paths []string
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			paths = append(paths, r.URL.Path)
			return nil, errors.New("dial tcp: refused")
		}),
	}

	project, err := client.GetProject(context.Background(), "a b")
	require.Error(t, err)
	assert.Nil(t, project)
	assert.Equal(t, []string{"/api/projects/a b", "/api/projects/a b/"}, paths)
}

func TestGetProjectEmptyID(t *testing.T) {
	client := newTestClient(testConfig())
	_, err := client.GetProject(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestGetProjectCancelledContext(t *testing.T) {
	client := newTestClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, r.Context().Err()
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GetProject(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&StatusError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&StatusError{StatusCode: http.StatusBadGateway}))
	assert.False(t, IsNotFound(errors.New("404")))
}
