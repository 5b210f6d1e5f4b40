package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"social-distance/logger"
	"social-distance/models"
)

// ErrPageLimitExceeded is returned when the upstream keeps issuing cursors past the page bound
var ErrPageLimitExceeded = errors.New("upstream pagination exceeded page limit")

const (
	DefaultPageSize     = 150
	DefaultMaxPages     = 1000
	DefaultFetchTimeout = 60 * time.Second
)

var tracer = otel.Tracer("social-distance/services")

// FollowsClient fetches single pages of the follow graph
type FollowsClient interface {
	FetchUserFollowers(ctx context.Context, fid uint64, opts PageOptions) (models.FollowsResponse, error)
	FetchUserFollowing(ctx context.Context, fid uint64, opts PageOptions) (models.FollowsResponse, error)
}

type pageFunc func(ctx context.Context, fid uint64, opts PageOptions) (models.FollowsResponse, error)

// GraphService walks the upstream cursors to collect complete follower and following lists
type GraphService struct {
	client   FollowsClient
	pageSize int
	maxPages int
	timeout  time.Duration
}

// NewGraphService creates a GraphService. Zero values in settings fall back to the defaults.
func NewGraphService(client FollowsClient, settings models.Neynar) *GraphService {
	g := &GraphService{
		client:   client,
		pageSize: settings.PageSize,
		maxPages: settings.MaxPages,
		timeout:  settings.GetFetchTimeout(),
	}
	if g.pageSize <= 0 {
		g.pageSize = DefaultPageSize
	}
	if g.maxPages <= 0 {
		g.maxPages = DefaultMaxPages
	}
	if g.timeout <= 0 {
		g.timeout = DefaultFetchTimeout
	}
	return g
}

// FetchFollowersAndFollowing returns every follower and followed account of fid, in page order.
// Followers are fetched first, then following; both share one deadline.
func (g *GraphService) FetchFollowersAndFollowing(ctx context.Context, fid uint64) ([]models.UserProfile, []models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "FetchFollowersAndFollowing", trace.WithAttributes(attribute.Int64("fid", int64(fid))))
	defer span.End()

	followers, err := g.collect(ctx, fid, "followers", g.client.FetchUserFollowers)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	following, err := g.collect(ctx, fid, "following", g.client.FetchUserFollowing)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("followers", len(followers)),
		attribute.Int("following", len(following)),
	)
	return followers, following, nil
}

func (g *GraphService) collect(ctx context.Context, fid uint64, kind string, fetch pageFunc) ([]models.UserProfile, error) {
	var users []models.UserProfile
	cursor := ""

	for page := 0; ; page++ {
		if page >= g.maxPages {
			return nil, fmt.Errorf("%w: %s of fid %d after %d pages", ErrPageLimitExceeded, kind, fid, page)
		}

		res, err := fetch(ctx, fid, PageOptions{Limit: g.pageSize, Cursor: cursor})
		if err != nil {
			return nil, fmt.Errorf("fetch %s of fid %d: %w", kind, fid, err)
		}

		users = append(users, res.Result.Users...)
		cursor = res.NextPage()
		if cursor == "" {
			logger.FromContext(ctx).Debug("Fetched follow list", "fid", fid, "kind", kind, "pages", page+1, "count", len(users))
			return users, nil
		}
	}
}
