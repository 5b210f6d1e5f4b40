package models

// ErrorResponse is the body of every non-200 response.
// Error is a string, or the upstream's own JSON body when an upstream error is mirrored.
type ErrorResponse struct {
	Error any `json:"error"`
}
