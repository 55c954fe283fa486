package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken wraps every token validation failure.
	ErrInvalidToken = errors.New("invalid token")
)

// JWTConfig holds JWT configuration. Exactly one key source is used, in
// order: PrivateKeyPEM, PublicKeyPEM, Secret.
type JWTConfig struct {
	// Secret is an HMAC-SHA256 key shared by issuer and validator.
	Secret string
	// PrivateKeyPEM signs RS256 tokens; the public key is derived from it.
	PrivateKeyPEM string
	// PublicKeyPEM validates RS256 tokens issued elsewhere.
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService issues and validates tokens.
type JWTService struct {
	config     JWTConfig
	method     jwt.SigningMethod
	signKey    any
	verifyKey  any
	canSign    bool
	parserOpts []jwt.ParserOption
}

// NewJWTService creates a JWTService from cfg.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		svc.method, svc.signKey, svc.verifyKey, svc.canSign = jwt.SigningMethodRS256, key, &key.PublicKey, true
	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.method, svc.verifyKey = jwt.SigningMethodRS256, key
	case cfg.Secret != "":
		svc.method, svc.signKey, svc.verifyKey, svc.canSign = jwt.SigningMethodHS256, []byte(cfg.Secret), []byte(cfg.Secret), true
	default:
		return nil, errors.New("jwt configuration requires PrivateKeyPEM, PublicKeyPEM or Secret")
	}

	svc.parserOpts = []jwt.ParserOption{jwt.WithValidMethods([]string{svc.method.Alg()})}
	if cfg.Issuer != "" {
		svc.parserOpts = append(svc.parserOpts, jwt.WithIssuer(cfg.Issuer))
	}
	return svc, nil
}

// GenerateToken issues a token for a user of a tenant.
func (s *JWTService) GenerateToken(userID, tenantID uuid.UUID, roles []string) (string, error) {
	if !s.canSign {
		return "", errors.New("cannot generate token: service is validation-only")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:   userID,
		TenantID: tenantID,
		Roles:    roles,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a token and checks signature, expiry, issuer and
// that it names a tenant.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.verifyKey, nil
	}, s.parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.TenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: no tenant", ErrInvalidToken)
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

// LoadKeyFromFile reads a PEM-encoded key.
func LoadKeyFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file %q: %w", path, err)
	}
	return string(data), nil
}

// GenerateKeyPair returns a PEM-encoded 2048-bit RSA key pair for local setups.
func GenerateKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	privateKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	return privateKeyPEM, publicKeyPEM, nil
}
