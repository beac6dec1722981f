package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrShareTokenInvalid = errors.New("share token invalid")
	ErrShareTokenExpired = errors.New("share token expired")
	ErrShareDisabled     = errors.New("share links disabled")
)

const defaultShareTTL = 24 * time.Hour

// ShareTokenService emite enlaces firmados de solo lectura para una recomendación.
type ShareTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type ShareClaims struct {
	RecommendationID string `json:"rid"`
	jwt.RegisteredClaims
}

func NewShareTokenService(secret string, ttl time.Duration) *ShareTokenService {
	if ttl <= 0 {
		ttl = defaultShareTTL
	}
	return &ShareTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "wellness-planner",
		now:    time.Now,
	}
}

// Enabled indica si hay secreto para firmar.
func (s *ShareTokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

func (s *ShareTokenService) TTL() time.Duration {
	return s.ttl
}

func (s *ShareTokenService) Issue(recommendationID string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrShareDisabled
	}
	if strings.TrimSpace(recommendationID) == "" {
		return "", time.Time{}, ErrShareTokenInvalid
	}
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	claims := ShareClaims{
		RecommendationID: recommendationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   recommendationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida firma, emisor y vencimiento y devuelve el id de la recomendación.
func (s *ShareTokenService) Parse(tokenString string) (string, error) {
	if !s.Enabled() {
		return "", ErrShareDisabled
	}
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrShareTokenInvalid
	}
	var claims ShareClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrShareTokenExpired
		}
		return "", ErrShareTokenInvalid
	}
	rid := strings.TrimSpace(claims.RecommendationID)
	if rid == "" || claims.Subject != rid {
		return "", ErrShareTokenInvalid
	}
	return rid, nil
}
