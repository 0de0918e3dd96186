package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/civictrack/civictrack/internal/shared/authorization"
	apperrors "github.com/civictrack/civictrack/internal/shared/errors"
)

const accessTokenName = "access token"

// Claims are issued by the identity provider; the subject is the account ID.
type Claims struct {
	Role authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTService verifies bearer tokens and can mint them for staff tooling.
type JWTService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTService(secret, issuer string, now func() time.Time) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		now:    now,
	}
}

func (s *JWTService) Generate(accountID string, role authorization.UserRole, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// Principal resolves a bearer token into the request's actor. Unknown role
// claims degrade to citizen. Failures are returned as *apperrors.AuthError.
func (s *JWTService) Principal(tokenString string) (*authorization.Principal, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpiredError(accessTokenName)
		}
		return nil, apperrors.NewTokenInvalidError(accessTokenName)
	}
	return &authorization.Principal{
		AccountID: claims.Subject,
		Role:      authorization.ParseUserRole(claims.Role.String()),
	}, nil
}
