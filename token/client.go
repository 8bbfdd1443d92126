// Package token talks to the music service accounts endpoints: it builds the
// PKCE authorization URL, exchanges authorization codes and refreshes access tokens.
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/now-playing/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

const (
	authorizePath = "/authorize"
	tokenPath     = "/api/token"
)

// Grant is the outcome of a successful token request
type Grant struct {
	AccessToken  string
	RefreshToken string // empty when the service did not issue or rotate one
	TokenType    string
	Scope        string
	ExpiresIn    time.Duration
}

// Client is a public OAuth2 client (no secret) using PKCE
type Client struct {
	config     *xoauth2.Config
	httpClient *http.Client
}

// NewClient creates a client for the accounts service at accountsURL (e.g. "https://accounts.spotify.com").
// A nil httpClient uses http.DefaultClient.
func NewClient(clientID, redirectURL, accountsURL string, scopes []string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	accountsURL = strings.TrimSuffix(accountsURL, "/")
	return &Client{
		config: &xoauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURL,
			Scopes:      scopes,
			Endpoint: xoauth2.Endpoint{
				AuthURL:   accountsURL + authorizePath,
				TokenURL:  accountsURL + tokenPath,
				AuthStyle: xoauth2.AuthStyleInParams, // public client: client_id goes in the form body
			},
		},
		httpClient: httpClient,
	}
}

// ClientID returns the configured OAuth client identifier
func (c *Client) ClientID() string {
	return c.config.ClientID
}

// AuthCodeURL returns the authorization URL carrying the S256 code challenge
func (c *Client) AuthCodeURL(codeChallenge string) string {
	return c.config.AuthCodeURL("",
		xoauth2.SetAuthURLParam(oauth2.ParamCodeChallengeMethod, string(oauth2.CodeMethodTypeS256)),
		xoauth2.SetAuthURLParam(oauth2.ParamCodeChallenge, codeChallenge),
	)
}

// Exchange trades an authorization code and its PKCE verifier for tokens
func (c *Client) Exchange(ctx context.Context, code, codeVerifier string) (*Grant, error) {
	tok, err := c.config.Exchange(c.withHTTPClient(ctx), code,
		xoauth2.SetAuthURLParam(oauth2.ParamCodeVerifier, codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("[token Exchange] failed to exchange code for token: %w", err)
	}
	return grantFromToken(tok), nil
}

// Refresh obtains a new access token using refreshToken. It never retries.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Grant, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("[token Refresh] refresh token is required")
	}
	tok, err := c.config.TokenSource(c.withHTTPClient(ctx), &xoauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("[token Refresh] failed to refresh access token: %w", err)
	}
	grant := grantFromToken(tok)
	if grant.RefreshToken == refreshToken {
		grant.RefreshToken = "" // not rotated
	}
	return grant, nil
}

func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, xoauth2.HTTPClient, c.httpClient)
}

func grantFromToken(tok *xoauth2.Token) *Grant {
	g := &Grant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    time.Duration(tok.ExpiresIn) * time.Second,
	}
	if g.ExpiresIn == 0 && !tok.Expiry.IsZero() {
		g.ExpiresIn = time.Until(tok.Expiry).Round(time.Second)
	}
	if scope, ok := tok.Extra(oauth2.ParamScope).(string); ok {
		g.Scope = scope
	}
	return g
}
