package models

import "encoding/json"

// UserProfile is a Farcaster account as returned by the Neynar follower endpoints.
// Only FID takes part in the distance computation.
type UserProfile struct {
	FID            uint64   `json:"fid"`
	CustodyAddress string   `json:"custodyAddress"`
	Username       string   `json:"username"`
	DisplayName    string   `json:"displayName"`
	Pfp            Pfp      `json:"pfp"`
	Profile        Profile  `json:"profile"`
	FollowerCount  int      `json:"followerCount"`
	FollowingCount int      `json:"followingCount"`
	Verifications  []string `json:"verifications"`
	ActiveStatus   string   `json:"activeStatus"`
	Timestamp      string   `json:"timestamp"`
}

// Pfp is the profile picture of a user
type Pfp struct {
	URL string `json:"url"`
}

// Profile carries the bio, kept as raw JSON
type Profile struct {
	Bio json.RawMessage `json:"bio,omitempty"`
}
