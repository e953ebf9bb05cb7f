package widget

import (
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// NewToken wraps a widget credential as a bearer token. When the credential is a JWT
// its exp claim becomes the token expiry, checked with Token.Valid; the signature
// is not verified here, the backend does that. Opaque credentials never expire.
func NewToken(credential string) *oauth2.Token {
	token := &oauth2.Token{AccessToken: credential, TokenType: "Bearer"}
	if credential == "" {
		return token
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return token
	}
	expiry, err := parsed.Claims.GetExpirationTime()
	if err == nil && expiry != nil {
		token.Expiry = expiry.Time
	}
	return token
}
