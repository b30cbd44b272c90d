package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func mintTokenWithoutExpiry(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenValid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "future expiry", token: mintToken(t, now.Add(time.Hour)), want: true},
		{name: "past expiry", token: mintToken(t, now.Add(-time.Hour)), want: false},
		{name: "no expiry claim", token: mintTokenWithoutExpiry(t), want: false},
		{name: "malformed token", token: "not.a.jwt", want: false},
		{name: "empty token", token: "", want: false},
		{name: "garbage payload segment", token: "aaaa.!!!!.cccc", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, TokenValid(tt.token, now))
			})
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(42 * time.Minute).Truncate(time.Second)
	token := mintToken(t, exp)

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}
