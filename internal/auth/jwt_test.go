package auth

import (
	"testing"
	"time"

	"brandloop/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "brandloop",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, 42, "sponsor@test.id", "SPONSOR")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sponsor@test.id", claims.Email)
	assert.Equal(t, "SPONSOR", claims.Role)
	assert.Equal(t, "brandloop", claims.Issuer)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, 42, "a@b.c", "ADMIN")
	require.NoError(t, err)

	other := testJWTConfig()
	other.AccessSecret = "different"
	_, err = ParseAccessToken(other, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	tok, err := GenerateAccessToken(cfg, 1, "a@b.c", "INFLUENCER")
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateRefreshToken(cfg, 7)
	require.NoError(t, err)

	userID, err := ParseRefreshToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	// tokens signed with the access secret must not pass refresh validation
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, 7, "a@b.c", "SPONSOR")
	require.NoError(t, err)

	_, err = ParseRefreshToken(cfg, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
