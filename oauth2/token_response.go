package oauth2

// TokenResponse is the token endpoint response shared by both grant types.
type TokenResponse struct {
	// AccessToken is the short-lived bearer credential for the music API.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer" for the music service.
	TokenType string `json:"token_type"`

	// Scope is the space separated list of granted scopes.
	// Example: "user-read-currently-playing user-read-recently-played"
	Scope string `json:"scope"`

	// ExpiresIn is the lifetime of the access token in seconds.
	// Example: 3600
	ExpiresIn int `json:"expires_in"`

	// RefreshToken is only present when the service issues or rotates one.
	// A refresh response without it keeps the previously stored refresh token.
	RefreshToken string `json:"refresh_token,omitempty"`
}
