package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-distance/models"
	"social-distance/services"
)

type graph struct {
	followers []uint64
	following []uint64
}

type fakeFetcher struct {
	graphs map[uint64]graph
	errs   map[uint64]error
	calls  []uint64
}

func (f *fakeFetcher) FetchFollowersAndFollowing(ctx context.Context, fid uint64) ([]models.UserProfile, []models.UserProfile, error) {
	f.calls = append(f.calls, fid)
	if err := f.errs[fid]; err != nil {
		return nil, nil, err
	}
	g := f.graphs[fid]
	return profiles(g.followers), profiles(g.following), nil
}

func profiles(fids []uint64) []models.UserProfile {
	users := make([]models.UserProfile, 0, len(fids))
	for _, fid := range fids {
		users = append(users, models.UserProfile{FID: fid, Username: fmt.Sprintf("user%d", fid)})
	}
	return users
}

func serve(t *testing.T, fetcher GraphFetcher, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewRouter(NewSocialDistanceEndpoint(fetcher, models.DedupeByFID), []string{"*"})
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSocialDistance(t *testing.T) {
	fetcher := &fakeFetcher{graphs: map[uint64]graph{
		2: {followers: []uint64{10, 11, 12}},
		3: {followers: []uint64{11, 12, 13}},
	}}

	rec := serve(t, fetcher, http.MethodGet, "/?fid=2&fid=3")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"socialDistance":0.5}`, rec.Body.String())
	assert.Equal(t, []uint64{2, 3}, fetcher.calls)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestSocialDistanceAnyMethodAndPath(t *testing.T) {
	fetcher := &fakeFetcher{}

	rec := serve(t, fetcher, http.MethodPost, DistancePath+"?fid=1&fid=2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"socialDistance":1}`, rec.Body.String())
}

func TestSocialDistanceDisjoint(t *testing.T) {
	fetcher := &fakeFetcher{graphs: map[uint64]graph{
		1: {followers: []uint64{5, 6}, following: []uint64{7}},
		2: {followers: []uint64{8}, following: []uint64{9}},
	}}

	rec := serve(t, fetcher, http.MethodGet, "/?fid=1&fid=2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"socialDistance":0}`, rec.Body.String())
}

func TestSocialDistanceRequiresTwoFids(t *testing.T) {
	for _, target := range []string{"/", "/?fid=1", "/?fid=1&fid=2&fid=3"} {
		t.Run(target, func(t *testing.T) {
			fetcher := &fakeFetcher{}

			rec := serve(t, fetcher, http.MethodGet, target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"exactly two fids are required"}`, rec.Body.String())
			assert.Empty(t, fetcher.calls)
		})
	}
}

func TestSocialDistanceRejectsInvalidFid(t *testing.T) {
	for _, target := range []string{"/?fid=abc&fid=2", "/?fid=1&fid=-4", "/?fid=1&fid="} {
		t.Run(target, func(t *testing.T) {
			fetcher := &fakeFetcher{}

			rec := serve(t, fetcher, http.MethodGet, target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid fid")
			assert.Empty(t, fetcher.calls)
		})
	}
}

func TestSocialDistanceMirrorsUpstreamError(t *testing.T) {
	upstream := &services.HTTPError{StatusCode: http.StatusTooManyRequests, Body: []byte(`{"code":"RateLimitExceeded","message":"slow down"}`)}
	fetcher := &fakeFetcher{errs: map[uint64]error{
		3: fmt.Errorf("fetch followers of fid 3: %w", upstream),
	}}

	rec := serve(t, fetcher, http.MethodGet, "/?fid=2&fid=3")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"RateLimitExceeded","message":"slow down"}}`, rec.Body.String())
	assert.Equal(t, []uint64{2, 3}, fetcher.calls)
}

func TestSocialDistanceMirrorsNonJSONUpstreamError(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[uint64]error{
		2: &services.HTTPError{StatusCode: http.StatusBadGateway, Body: []byte("bad gateway")},
	}}

	rec := serve(t, fetcher, http.MethodGet, "/?fid=2&fid=3")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"bad gateway"}`, rec.Body.String())
	assert.Equal(t, []uint64{2}, fetcher.calls)
}

func TestSocialDistanceHidesUnclassifiedError(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[uint64]error{
		2: fmt.Errorf("fetch following of fid 2: %w", services.ErrPageLimitExceeded),
		3: errors.New("unused"),
	}}

	rec := serve(t, fetcher, http.MethodGet, "/?fid=2&fid=3")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := serve(t, &fakeFetcher{}, http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDIsPropagated(t *testing.T) {
	handler := NewRouter(NewSocialDistanceEndpoint(&fakeFetcher{}, models.DedupeByFID), []string{"*"})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "7f1e4f3c-2b7a-4d8e-9c55-0a3b1f6d2e11")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "7f1e4f3c-2b7a-4d8e-9c55-0a3b1f6d2e11", rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsCanonicalized(t *testing.T) {
	handler := NewRouter(NewSocialDistanceEndpoint(&fakeFetcher{}, models.DedupeByFID), []string{"*"})

	for _, supplied := range []string{
		"{7F1E4F3C-2B7A-4D8E-9C55-0A3B1F6D2E11}",
		"urn:uuid:7f1e4f3c-2b7a-4d8e-9c55-0a3b1f6d2e11",
	} {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, supplied)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "7f1e4f3c-2b7a-4d8e-9c55-0a3b1f6d2e11", rec.Header().Get(RequestIDHeader), supplied)
	}
}

func TestRequestIDReplacesInvalidValue(t *testing.T) {
	handler := NewRouter(NewSocialDistanceEndpoint(&fakeFetcher{}, models.DedupeByFID), []string{"*"})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	id := rec.Header().Get(RequestIDHeader)
	assert.NotEqual(t, "<script>", id)
	assert.Len(t, id, 36)
}
