package widget

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, expiry time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	value, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return value
}

func TestNewToken(t *testing.T) {
	now := time.Now()
	var testCases = []struct {
		description  string
		credential   string
		expectUsable bool
		expectExpiry bool
	}{
		{description: "opaque", credential: "tok-123", expectUsable: true},
		{description: "empty", credential: ""},
		{description: "live jwt", credential: signed(t, now.Add(time.Hour)), expectUsable: true, expectExpiry: true},
		{description: "expired jwt", credential: signed(t, now.Add(-time.Minute)), expectExpiry: true},
		{description: "expiring within delta", credential: signed(t, now.Add(5*time.Second)), expectExpiry: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			token := NewToken(testCase.credential)
			assert.Equal(t, "Bearer", token.TokenType)
			assert.Equal(t, testCase.credential, token.AccessToken)
			assert.Equal(t, testCase.expectExpiry, !token.Expiry.IsZero())
			assert.Equal(t, testCase.expectUsable, token.Valid())
		})
	}
}
