package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/myfoodmap/webclient/internal/model"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token   string     `json:"token"`
	User    model.User `json:"user"`
	Message string     `json:"message"`
}

type signupReq struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type messageResp struct {
	Message string `json:"message"`
}

type availabilityResp struct {
	Available bool `json:"available"`
}

// Login exchanges credentials for a bearer token and the user profile.
// The backend's message is returned so it can be shown to the user.
func (c *Client) Login(ctx context.Context, username, password string) (string, model.User, string, error) {
	var resp loginResp
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", loginReq{Username: username, Password: password}, &resp)
	if err != nil {
		return "", model.User{}, "", err
	}
	return resp.Token, resp.User, resp.Message, nil
}

// Signup registers a new account and returns the backend's message.
func (c *Client) Signup(ctx context.Context, username, nickname, password string) (string, error) {
	var resp messageResp
	err := c.doJSON(ctx, http.MethodPost, "/auth/signup", "", signupReq{Username: username, Nickname: nickname, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// CheckUsername reports whether the username is still free to register.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	var resp availabilityResp
	err := c.doJSON(ctx, http.MethodGet, "/auth/check-username/"+url.PathEscape(username), "", nil, &resp)
	if err != nil {
		return false, err
	}
	return resp.Available, nil
}
