package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config, now: time.Now}
}

// Identity is the authenticated user a token is issued for.
type Identity struct {
	UserID           int64
	Email            string
	Role             string
	Name             string
	ProfileCompleted bool
}

// Claims defines JWT token content
type Claims struct {
	UserID           int64  `json:"userId"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Name             string `json:"name,omitempty"`
	ProfileCompleted bool   `json:"profileCompleted"`
	jwt.RegisteredClaims
}

// TokenPair is an access token together with its opaque refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	RefreshExpiresIn int64
	RefreshExpiry    time.Time
}

// GenerateTokenPair creates access and refresh token pair
func (s *JWTService) GenerateTokenPair(id Identity) (*TokenPair, error) {
	now := s.now()

	claims := &Claims{
		UserID:           id.UserID,
		Email:            id.Email,
		Role:             id.Role,
		Name:             id.Name,
		ProfileCompleted: id.ProfileCompleted,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     uuid.New().String(),
		ExpiresIn:        int64(s.config.AccessTokenExp.Seconds()),
		RefreshExpiresIn: int64(s.config.RefreshTokenExp.Seconds()),
		RefreshExpiry:    now.Add(s.config.RefreshTokenExp),
	}, nil
}

// AccessTokenTTL is how long an access token (and the session cookie) lives.
func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.config.AccessTokenExp
}

// ValidateToken validates a token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithIssuer(s.config.TokenIssuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrInvalidFormat
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrInvalidFormat
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}
	if strings.Count(authHeader, ".") == 2 {
		return authHeader, nil
	}
	return "", ErrInvalidFormat
}

// ValidateAndExtractClaims validates and extracts claims from a token string
func (s *JWTService) ValidateAndExtractClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.UserID <= 0 || claims.Email == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
