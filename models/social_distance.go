package models

// SocialDistanceResponse is the body of a successful distance request
type SocialDistanceResponse struct {
	SocialDistance float64 `json:"socialDistance"`
}

// FollowGraph is the follower and following lists of one fid, in page order
type FollowGraph struct {
	FID       uint64
	Followers []UserProfile
	Following []UserProfile
}

// SocialDistance holds the overlap counts between two follow graphs and the resulting ratio
type SocialDistance struct {
	FollowersInCommon    int
	FollowingInCommon    int
	TotalUniqueFollowers int
	TotalUniqueFollowing int
	Distance             float64
}

// ComputeSocialDistance compares two follow graphs.
// Distance is (followers in common + following in common) / (unique followers + unique following),
// and 1 when both unique totals are zero.
func ComputeSocialDistance(a, b FollowGraph, mode DedupeMode) SocialDistance {
	d := SocialDistance{
		FollowersInCommon:    countInCommon(a.Followers, b.Followers),
		FollowingInCommon:    countInCommon(a.Following, b.Following),
		TotalUniqueFollowers: countUnique(a.Followers, b.Followers, mode),
		TotalUniqueFollowing: countUnique(a.Following, b.Following, mode),
	}

	totalInCommon := d.FollowersInCommon + d.FollowingInCommon
	totalUnique := d.TotalUniqueFollowers + d.TotalUniqueFollowing
	if totalUnique > 0 {
		d.Distance = float64(totalInCommon) / float64(totalUnique)
	} else {
		d.Distance = 1
	}
	return d
}

// countInCommon counts entries of xs whose fid appears anywhere in ys.
// Duplicates in xs are counted once per occurrence.
func countInCommon(xs, ys []UserProfile) int {
	fids := make(map[uint64]struct{}, len(ys))
	for _, y := range ys {
		fids[y.FID] = struct{}{}
	}

	count := 0
	for _, x := range xs {
		if _, ok := fids[x.FID]; ok {
			count++
		}
	}
	return count
}

func countUnique(xs, ys []UserProfile, mode DedupeMode) int {
	if mode == DedupeNone {
		return len(xs) + len(ys)
	}

	fids := make(map[uint64]struct{}, len(xs)+len(ys))
	for _, x := range xs {
		fids[x.FID] = struct{}{}
	}
	for _, y := range ys {
		fids[y.FID] = struct{}{}
	}
	return len(fids)
}
