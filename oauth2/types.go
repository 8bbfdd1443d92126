package oauth2

// ResponseType represents the OAuth 2.0 response type requested at the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Example: /authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// CodeMethodType represents the PKCE (Proof Key for Code Exchange) challenge method.
type CodeMethodType string

const (
	// CodeMethodTypeS256 indicates SHA-256 hashing is used for the code challenge.
	// Client sends: code_challenge = BASE64URL(SHA256(code_verifier))
	CodeMethodTypeS256 CodeMethodType = "S256"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: code, client_id, redirect_uri, code_verifier
	// Returns: access_token, refresh_token
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenGrant exchanges a refresh token for a new access token.
	// Token request includes: refresh_token, client_id
	// Returns: access_token and, optionally, a rotated refresh_token
	RefreshTokenGrant GrantType = "refresh_token"
)

// Request parameter names used on the authorization and token endpoints
const (
	ParamResponseType        = "response_type"
	ParamClientID            = "client_id"
	ParamScope               = "scope"
	ParamRedirectURI         = "redirect_uri"
	ParamCodeChallengeMethod = "code_challenge_method"
	ParamCodeChallenge       = "code_challenge"
	ParamCodeVerifier        = "code_verifier"
	ParamGrantType           = "grant_type"
	ParamCode                = "code"
	ParamRefreshToken        = "refresh_token"
	ParamError               = "error"
	ParamErrorDescription    = "error_description"
)
