package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"social-distance/auth"
	"social-distance/models"
)

// DefaultBaseURL is the Neynar API host
const DefaultBaseURL = "https://api.neynar.com"

const followersPath = "/v1/farcaster/followers"
const followingPath = "/v1/farcaster/following"

var endpoints = map[string]endpoint{
	"NEYNAR_FOLLOWERS": {http.MethodGet, followersPath},
	"NEYNAR_FOLLOWING": {http.MethodGet, followingPath},
}

type endpoint struct {
	method string
	path   string
}

// PageOptions selects one page of a paginated Neynar list
type PageOptions struct {
	Limit  int
	Cursor string
}

// NeynarService is a struct that has methods related to making Neynar API requests
type NeynarService struct {
	settings    models.Neynar
	authManager *auth.Manager
	client      *http.Client
	limiter     *rate.Limiter
}

// NewNeynarService creates a new NeynarService object
func NewNeynarService(settings models.Neynar) *NeynarService {
	neynarService := NeynarService{}
	neynarService.settings = settings
	if neynarService.settings.BaseURL == "" {
		neynarService.settings.BaseURL = DefaultBaseURL
	}
	neynarService.authManager = auth.NewManager(settings)
	neynarService.client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	limit := rate.Inf
	if settings.RequestsPerSecond > 0 {
		limit = rate.Limit(settings.RequestsPerSecond)
	}
	neynarService.limiter = rate.NewLimiter(limit, 1)
	return &neynarService
}

// FetchUserFollowers fetches one page of the accounts following fid
func (n *NeynarService) FetchUserFollowers(ctx context.Context, fid uint64, opts PageOptions) (models.FollowsResponse, error) {
	return n.fetchFollows(ctx, endpoints["NEYNAR_FOLLOWERS"], fid, opts)
}

// FetchUserFollowing fetches one page of the accounts fid follows
func (n *NeynarService) FetchUserFollowing(ctx context.Context, fid uint64, opts PageOptions) (models.FollowsResponse, error) {
	return n.fetchFollows(ctx, endpoints["NEYNAR_FOLLOWING"], fid, opts)
}

func (n *NeynarService) fetchFollows(ctx context.Context, endpoint endpoint, fid uint64, opts PageOptions) (models.FollowsResponse, error) {
	var followsResponse models.FollowsResponse

	headers := map[string]string{}
	n.appendCommonHeaders(headers)
	if err := n.authManager.AppendAuthHeader(headers); err != nil {
		return followsResponse, err
	}

	queryParameters := map[string][]string{
		"fid":   {strconv.FormatUint(fid, 10)},
		"limit": {strconv.Itoa(opts.Limit)},
	}
	if opts.Cursor != "" {
		queryParameters["cursor"] = []string{opts.Cursor}
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return followsResponse, err
	}

	url := strings.TrimRight(n.settings.BaseURL, "/") + endpoint.path
	request := Request{endpoint.method, url, headers, queryParameters}
	err := MakeRequest(ctx, n.client, request, &followsResponse)

	return followsResponse, err
}

func (n *NeynarService) appendCommonHeaders(headers map[string]string) {
	headers["Accept"] = "application/json"
}
