package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/ssh"
)

// Key sizes.
const (
	// HMACKeyBytes is the amount of randomness in a generated HS256 key.
	HMACKeyBytes = 256 / 8

	// DefaultRSABits is the modulus size of generated RS256 keys.
	DefaultRSABits = 2048

	// MinRSABits is the smallest modulus GenerateRSAKey accepts.
	MinRSABits = 2048
)

// GenerateKey returns fresh key material for alg.
//
// HS256 keys are 256 random bits, base64url encoded without padding.
// RS256 keys are PKCS#8 PEM private keys; the public key is recoverable
// with PublicKeyPEM.
func GenerateKey(alg Algorithm) ([]byte, error) {
	alg, err := ParseAlgorithm(string(alg))
	if err != nil {
		return nil, err
	}
	if alg == RS256 {
		return GenerateRSAKey(DefaultRSABits)
	}

	buf := make([]byte, HMACKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate HS256 key: %w", err)
	}
	return []byte(base64.RawURLEncoding.EncodeToString(buf)), nil
}

// GenerateRSAKey generates a PKCS#8 PEM private key with the given modulus size.
func GenerateRSAKey(bits int) ([]byte, error) {
	if bits < MinRSABits {
		return nil, fmt.Errorf("%w: RSA keys need at least %d bits, got %d", ErrInvalidKey, MinRSABits, bits)
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate RS256 key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("encode RS256 key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// PublicKeyPEM extracts the PKCS#1 public key from any RSA key PEM.
func PublicKeyPEM(key []byte) ([]byte, error) {
	pub, err := parseRSAPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(pub),
	}), nil
}

// Fingerprint returns the SSH-style SHA256 fingerprint of an RSA key PEM.
func Fingerprint(key []byte) (string, error) {
	pub, err := parseRSAPublicKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return ssh.FingerprintSHA256(sshPub), nil
}

func parseRSAPublicKey(key []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, errors.New("key must be PEM encoded")
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		pub, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("not an RSA public key")
		}
		return pub, nil
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("certificate does not hold an RSA key")
		}
		return pub, nil
	case "PRIVATE KEY", "RSA PRIVATE KEY":
		priv, err := jwt.ParseRSAPrivateKeyFromPEM(key)
		if err != nil {
			return nil, err
		}
		return &priv.PublicKey, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block %q", block.Type)
	}
}
