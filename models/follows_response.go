package models

// FollowsResponse contains one page of a Neynar followers or following request
type FollowsResponse struct {
	Result FollowsResult `json:"result"`
}

// FollowsResult is the page payload
type FollowsResult struct {
	Users []UserProfile `json:"users"`
	Next  NextCursor    `json:"next"`
}

// NextCursor points at the following page. A nil or empty cursor ends pagination.
type NextCursor struct {
	Cursor *string `json:"cursor"`
}

// NextPage returns the cursor for the following page, or "" on the last page
func (r FollowsResponse) NextPage() string {
	if r.Result.Next.Cursor == nil {
		return ""
	}
	return *r.Result.Next.Cursor
}
