package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/peterldowns/testy/assert"
    "github.com/peterldowns/testy/check"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "panitia-1", RoleOrganizer, time.Hour)
    assert.NoError(t, err)
    check.True(t, tok.Exp.After(time.Now()))

    claims, err := ParseAccessToken("s3cret", tok.Token)
    assert.NoError(t, err)
    check.Equal(t, "panitia-1", claims.Subject)
    check.Equal(t, RoleOrganizer, claims.Role)
}

func TestParseAccessTokenRejects(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "panitia-1", RoleOrganizer, time.Hour)
    assert.NoError(t, err)
    _, err = ParseAccessToken("other", tok.Token)
    check.Error(t, err)

    // HS512 is not accepted even with the right key.
    claims := Claims{Role: RoleOrganizer, RegisteredClaims: jwt.RegisteredClaims{
        Subject:   "panitia-1",
        ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
    }}
    raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
    assert.NoError(t, err)
    _, err = ParseAccessToken("s3cret", raw)
    check.Error(t, err)

    // Tokens without exp are refused.
    claims.ExpiresAt = nil
    raw, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
    assert.NoError(t, err)
    _, err = ParseAccessToken("s3cret", raw)
    check.Error(t, err)
}

func TestNewAccessTokenValidatesInput(t *testing.T) {
    _, err := NewAccessToken("", "x", RoleOrganizer, time.Hour)
    check.Error(t, err)
    _, err = NewAccessToken("s", " ", RoleOrganizer, time.Hour)
    check.Error(t, err)
    _, err = NewAccessToken("s", "x", RoleOrganizer, 0)
    check.Error(t, err)
}
