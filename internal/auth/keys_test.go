package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
)

// pemKeyPair renders a generated key the way deployments store it: PEM,
// then base64 over the whole file.
func pemKeyPair(t *testing.T) (priv, pub string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return base64.StdEncoding.EncodeToString(privPEM), base64.StdEncoding.EncodeToString(pubPEM)
}

func TestLoadKeyMaterial(t *testing.T) {
	accessPriv, accessPub := pemKeyPair(t)
	refreshPriv, refreshPub := pemKeyPair(t)

	km, err := LoadKeyMaterial(accessPriv, accessPub, refreshPriv, refreshPub)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, class := range []TokenClass{ClassAccess, ClassRefresh} {
		if _, err := km.signing(class); err != nil {
			t.Errorf("signing(%s): %v", class, err)
		}
		if _, err := km.verifying(class); err != nil {
			t.Errorf("verifying(%s): %v", class, err)
		}
	}
}

func TestLoadKeyMaterialRejectsBadInput(t *testing.T) {
	accessPriv, accessPub := pemKeyPair(t)
	refreshPriv, refreshPub := pemKeyPair(t)

	cases := []struct {
		name                   string
		aPriv, aPub, rPriv, rPub string
	}{
		{"bad base64", "%%%", accessPub, refreshPriv, refreshPub},
		{"not pem", base64.StdEncoding.EncodeToString([]byte("hello")), accessPub, refreshPriv, refreshPub},
		{"public where private expected", accessPub, accessPub, refreshPriv, refreshPub},
		{"empty refresh public", accessPriv, accessPub, refreshPriv, ""},
	}
	for _, tc := range cases {
		if _, err := LoadKeyMaterial(tc.aPriv, tc.aPub, tc.rPriv, tc.rPub); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestKeyMaterialUnknownClass(t *testing.T) {
	km := &KeyMaterial{}
	if _, err := km.signing(TokenClass("id")); err == nil {
		t.Error("signing: expected error for unknown class")
	}
	if _, err := km.verifying(TokenClass("id")); err == nil {
		t.Error("verifying: expected error for unknown class")
	}
}
