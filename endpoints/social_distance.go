package endpoints

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"social-distance/models"
	"social-distance/services"
)

const errExactlyTwoFids = "exactly two fids are required"

// GraphFetcher retrieves the complete follower and following lists of a fid
type GraphFetcher interface {
	FetchFollowersAndFollowing(ctx context.Context, fid uint64) ([]models.UserProfile, []models.UserProfile, error)
}

// SocialDistanceEndpoint compares the follow graphs of two fids
type SocialDistanceEndpoint struct {
	fetcher GraphFetcher
	dedupe  models.DedupeMode
}

// NewSocialDistanceEndpoint creates a new SocialDistanceEndpoint object
func NewSocialDistanceEndpoint(fetcher GraphFetcher, dedupe models.DedupeMode) *SocialDistanceEndpoint {
	socialDistanceEndpoint := SocialDistanceEndpoint{}
	socialDistanceEndpoint.fetcher = fetcher
	socialDistanceEndpoint.dedupe = dedupe
	return &socialDistanceEndpoint
}

// SocialDistance is the entry point for a ?fid=A&fid=B HTTP request
func (s *SocialDistanceEndpoint) SocialDistance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := Logger(ctx)

	rawFids := r.URL.Query()["fid"]
	if len(rawFids) != 2 {
		writeError(w, http.StatusBadRequest, errExactlyTwoFids)
		return
	}

	fids := make([]uint64, 0, len(rawFids))
	for _, raw := range rawFids {
		fid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid fid: "+raw)
			return
		}
		fids = append(fids, fid)
	}

	graphs := make([]models.FollowGraph, 0, len(fids))
	for _, fid := range fids {
		followers, following, err := s.fetcher.FetchFollowersAndFollowing(ctx, fid)
		if err != nil {
			s.handleError(ctx, w, err)
			return
		}
		graphs = append(graphs, models.FollowGraph{FID: fid, Followers: followers, Following: following})
	}

	distance := models.ComputeSocialDistance(graphs[0], graphs[1], s.dedupe)

	logger.Info("Computed social distance",
		"fid1", fids[0],
		"fid2", fids[1],
		"total_unique_followers", distance.TotalUniqueFollowers,
		"total_unique_following", distance.TotalUniqueFollowing,
		"followers_in_common", distance.FollowersInCommon,
		"following_in_common", distance.FollowingInCommon,
		"social_distance", distance.Distance,
	)
	for _, graph := range graphs {
		if sample := sampleProfile(graph.Followers); sample != nil {
			logger.Debug("Sample follower", "fid", graph.FID, "follower", sample)
		}
	}

	writeJSON(w, http.StatusOK, models.SocialDistanceResponse{SocialDistance: distance.Distance})
}

// handleError mirrors upstream HTTP errors and hides everything else behind a 500
func (s *SocialDistanceEndpoint) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	Logger(ctx).Error("Social distance request failed", "error", err)

	var httpErr *services.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.StatusCode, models.ErrorResponse{Error: upstreamErrorBody(httpErr)})
		return
	}
	writeError(w, http.StatusInternalServerError, "Server error")
}

func sampleProfile(users []models.UserProfile) *models.UserProfile {
	if len(users) == 0 {
		return nil
	}
	return &users[rand.IntN(len(users))]
}
