package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/misha4322/ps-server/utils"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := utils.GenerateToken(42, "admin", "sekret", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseToken(token, "sekret")
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "admin", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken(1, "customer", "sekret", time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseToken(token, "other")
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := utils.GenerateToken(7, "customer", "sekret", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseToken(token, "sekret")
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	claims, err := utils.ParseTokenAllowExpired(token, "sekret")
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
}

func TestParseTokenAllowExpiredStillChecksSignature(t *testing.T) {
	token, err := utils.GenerateToken(7, "customer", "sekret", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseTokenAllowExpired(token, "wrong")
	require.Error(t, err)
}
