package mock

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/sessionauth/schema"
)

type identityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// IssueCredential returns a signed credential for user, valid for an hour.
func (s *Service) IssueCredential(user *schema.User) (string, error) {
	return s.issue(user, s.ClientID, time.Hour)
}

// IssueExpiredCredential returns a credential whose expiry has passed.
func (s *Service) IssueExpiredCredential(user *schema.User) (string, error) {
	return s.issue(user, s.ClientID, -time.Minute)
}

func (s *Service) issue(user *schema.User, audience string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.PrivateKey)
}

// verify validates a credential the way the real backend verifies identity tokens.
func (s *Service) verify(credential string) (*schema.User, error) {
	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		return &s.PrivateKey.PublicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(s.ClientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("invalid token: missing subject")
	}
	name := claims.Name
	if name == "" {
		name = "Unknown"
	}
	return &schema.User{ID: claims.Subject, Name: name, Email: claims.Email, Picture: claims.Picture}, nil
}
