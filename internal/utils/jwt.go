package utils // package utils mints and describes the tokens accepted by the API

import (
    "errors"
    "strings"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// RoleOrganizer is the role claim carried by panitia (organizer) tokens.
const RoleOrganizer = "ORGANIZER"

// Claims is the JWT payload understood by the middleware.  Subject names
// the organizer and ends up in AuctionItem.CreatedBy.
type Claims struct {
    Role string `json:"role"`
    jwt.RegisteredClaims
}

// AccessToken is a signed token together with its expiry.
type AccessToken struct {
    Token string
    Exp   time.Time
}

// NewAccessToken signs an HS256 token for subject with the given role,
// valid for ttl from now.
func NewAccessToken(secret, subject, role string, ttl time.Duration) (AccessToken, error) {
    if secret == "" {
        return AccessToken{}, errors.New("empty signing secret")
    }
    if strings.TrimSpace(subject) == "" {
        return AccessToken{}, errors.New("empty subject")
    }
    if ttl <= 0 {
        return AccessToken{}, errors.New("ttl must be positive")
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := Claims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   subject,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its claims.
// Only HS256 is accepted and an expiry is mandatory.
func ParseAccessToken(secret, raw string) (*Claims, error) {
    claims := &Claims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil {
        return nil, err
    }
    if !tok.Valid {
        return nil, errors.New("invalid token")
    }
    return claims, nil
}
