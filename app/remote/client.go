// Package remote is the HTTP client for the school-statistics backend: file
// import submission, import history, and academic-year registration.
package remote

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client talks to the statistics backend API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for the given API base URL. token is the
// operator's bearer token and may be empty for unauthenticated deployments.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// SessionExpired reports whether the operator's bearer token carries an exp
// claim in the past. The signature is not verified here; that is the
// backend's job. An unreadable or claim-less token is treated as live and
// left for the server to refuse.
func (c *Client) SessionExpired() bool {
	if c.token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(c.token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
