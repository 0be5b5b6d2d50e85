package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClass selects which key pair and lifetime a token is issued under.
type TokenClass string

const (
	ClassAccess  TokenClass = "access"  // short-lived, sent on every request
	ClassRefresh TokenClass = "refresh" // longer-lived, exchanged for new access tokens
)

// KeyMaterial holds one RSA key pair per token class.  It is built once at
// startup and injected into the codec; nothing reads key environment
// variables after boot.  A missing or malformed key is fatal during Load,
// never a per-request error.
type KeyMaterial struct {
	access  keyPair
	refresh keyPair
}

type keyPair struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// LoadKeyMaterial parses the four keys from base64-encoded PEM, the format
// the deployment environment stores them in.
func LoadKeyMaterial(accessPriv, accessPub, refreshPriv, refreshPub string) (*KeyMaterial, error) {
	km := &KeyMaterial{}
	var err error
	if km.access.private, err = decodePrivateKey(accessPriv); err != nil {
		return nil, fmt.Errorf("access private key: %w", err)
	}
	if km.access.public, err = decodePublicKey(accessPub); err != nil {
		return nil, fmt.Errorf("access public key: %w", err)
	}
	if km.refresh.private, err = decodePrivateKey(refreshPriv); err != nil {
		return nil, fmt.Errorf("refresh private key: %w", err)
	}
	if km.refresh.public, err = decodePublicKey(refreshPub); err != nil {
		return nil, fmt.Errorf("refresh public key: %w", err)
	}
	return km, nil
}

// NewKeyMaterial builds key material from already-parsed private keys.
// Verification keys are derived from the private halves.  Used by tests and
// by deployments that load keys from somewhere other than the environment.
func NewKeyMaterial(accessPriv, refreshPriv *rsa.PrivateKey) *KeyMaterial {
	return &KeyMaterial{
		access:  keyPair{private: accessPriv, public: &accessPriv.PublicKey},
		refresh: keyPair{private: refreshPriv, public: &refreshPriv.PublicKey},
	}
}

// signing returns the private key for issuing tokens of the given class.
func (k *KeyMaterial) signing(class TokenClass) (*rsa.PrivateKey, error) {
	switch class {
	case ClassAccess:
		return k.access.private, nil
	case ClassRefresh:
		return k.refresh.private, nil
	}
	return nil, fmt.Errorf("no signing key configured for token class %q", class)
}

// verifying returns the public key for checking tokens of the given class.
func (k *KeyMaterial) verifying(class TokenClass) (*rsa.PublicKey, error) {
	switch class {
	case ClassAccess:
		return k.access.public, nil
	case ClassRefresh:
		return k.refresh.public, nil
	}
	return nil, fmt.Errorf("no verification key configured for token class %q", class)
}

func decodePrivateKey(b64 string) (*rsa.PrivateKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse PEM: %w", err)
	}
	return key, nil
}

func decodePublicKey(b64 string) (*rsa.PublicKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse PEM: %w", err)
	}
	return key, nil
}
