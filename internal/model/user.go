package model

// User is the authenticated user's profile as returned by the backend on
// login. It lives inside the session for the lifetime of the browser tab.
type User struct {
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
}
