package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iliyamo/gym-connect/internal/model"
)

// Claims is the JWT payload for both token classes.  Subject carries the
// role entity id (the profile that owns resources), MainUserID the account
// id, and TokenID the random identifier under which the session store tracks
// this token's liveness.
type Claims struct {
	TokenID    string `json:"token_uuid"`
	Role       string `json:"user_type"`
	MainUserID string `json:"main_user_id"`
	jwt.RegisteredClaims
}

// IssuedToken is what Issue hands back: the signed compact token plus the
// fields the caller needs to create the matching session record and cookie.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// Codec signs and verifies tokens against injected key material.  It is
// stateless apart from the randomness of fresh token ids; signature
// verification alone proves only that we issued the token and that it has
// not expired on its own clock, never that it is still honored.  The
// session store answers that.
type Codec struct {
	keys *KeyMaterial
}

func NewCodec(keys *KeyMaterial) *Codec { return &Codec{keys: keys} }

// Issue builds and signs an RS256 token of the given class.  Every call
// generates a fresh token id, so an access/refresh pair issued together
// shares subject, role and account id but never a token id.  The same ttl
// the caller passes here must back the session record; there is no second
// lifetime formula anywhere.
func (c *Codec) Issue(class TokenClass, roleEntityID, mainUserID string, role model.Role, ttl time.Duration) (IssuedToken, error) {
	key, err := c.keys.signing(class)
	if err != nil {
		return IssuedToken{}, err
	}

	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		TokenID:    uuid.NewString(),
		Role:       role.String(),
		MainUserID: mainUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   roleEntityID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign %s token: %w", class, err)
	}
	return IssuedToken{Token: signed, TokenID: claims.TokenID, ExpiresAt: exp}, nil
}

// Verify checks the signature and the standard temporal claims (nbf <= now
// <= exp) of a compact token against the class's public key and returns the
// parsed claims.  Every failure maps to ErrTokenInvalid; the caller has no
// business telling a forged token from an expired one.
func (c *Codec) Verify(class TokenClass, raw string) (*Claims, error) {
	key, err := c.keys.verifying(class)
	if err != nil {
		return nil, err
	}

	claims := new(Claims)
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Subject == "" || claims.MainUserID == "" {
		return nil, fmt.Errorf("%w: missing subject claims", ErrTokenInvalid)
	}
	if _, err := uuid.Parse(claims.TokenID); err != nil {
		return nil, fmt.Errorf("%w: malformed token id", ErrTokenInvalid)
	}
	if _, err := model.ParseRole(claims.Role); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}
