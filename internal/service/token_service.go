package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"network-match/internal/domain"
)

// TokenService valida los access tokens emitidos por el servicio de identidad
// y resuelve el miembro autenticado.
type TokenService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

type Claims struct {
	MemberID  string      `json:"uid"`
	Role      domain.Role `json:"role,omitempty"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret, issuer string, accessTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if issuer == "" {
		issuer = "network-match"
	}
	return &TokenService{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// IssueAccessToken firma un access token. Lo usa `matchctl token` en entornos
// locales; en produccion los tokens los emite el servicio de identidad.
func (s *TokenService) IssueAccessToken(member domain.Member) (string, error) {
	if len(s.secret) == 0 || member.ID == "" {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		MemberID:  member.ID,
		Role:      member.Role,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   member.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ParseAccessToken(accessToken string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{}
	token, err := jwt.ParseWithClaims(accessToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid || claims.TokenType != "access" || claims.MemberID == "" {
		return Claims{}, ErrTokenInvalid
	}
	if claims.Subject != "" && claims.Subject != claims.MemberID {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
