package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a session token encodes
type QuizUserClaims struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	jwt.RegisteredClaims
}

// GenerateNewQuizUserToken mints a stateless session token bound to the
// stable user id. The token carries its own expiry; nothing is persisted.
func GenerateNewQuizUserToken(
	expiresIn time.Duration,
	userID string,
	phoneNumber string,
	secretKey string,
) (tokenString string, err error) {
	claims := QuizUserClaims{
		phoneNumber,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateQuizUserToken(tokenString string, secretKey string) (claims *QuizUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &QuizUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*QuizUserClaims)
	valid = valid && token.Valid
	return
}
