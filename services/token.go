package services

import (
	"fmt"
	"time"

	apperrors "travel-app/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint `json:"userid"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và kiểm tra bearer token HS256
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// GenerateToken tạo token cho user
func (s *TokenService) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserInfo: UserInfo{UserId: userID},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   fmt.Sprint(userID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GetUserIDFromToken kiểm tra chữ ký, hạn dùng và lấy userID
func (s *TokenService) GetUserIDFromToken(tokenString string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid or expired token", err)
	}
	if claims.UserInfo.UserId == 0 {
		return 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token does not contain user information", nil)
	}
	return claims.UserInfo.UserId, nil
}
