package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path"
)

const (
	privateKeyFile = "frostkeep-jwt.key"
	publicKeyFile  = "frostkeep-jwt.pub"
)

// LoadOrCreateKeyPair returns the signing keypair stored under dir, generating
// and persisting a fresh 2048-bit pair on first start.
func LoadOrCreateKeyPair(dir string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privPath := path.Join(dir, privateKeyFile)
	pubPath := path.Join(dir, publicKeyFile)

	if _, err := os.Stat(privPath); err == nil {
		priv, err := LoadPrivateKey(privPath)
		if err != nil {
			return nil, nil, err
		}
		pub, err := LoadPublicKey(pubPath)
		if err != nil {
			return nil, nil, err
		}
		return priv, pub, nil
	}

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	if err := os.WriteFile(privPath, privPem, 0o600); err != nil {
		return nil, nil, err
	}

	pubDer, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	pubPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDer})
	if err := os.WriteFile(pubPath, pubPem, 0o644); err != nil {
		return nil, nil, err
	}

	return priv, &priv.PublicKey, nil
}
