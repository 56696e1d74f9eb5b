package adminapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenExpiry = 12 * time.Hour

func generateToken(signingKey []byte, username string, superAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":         username,
		"super_admin": superAdmin,
		"exp":         time.Now().Add(tokenExpiry).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

func parseToken(signingKey []byte, tokenStr string) (username string, superAdmin bool, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return signingKey, nil
	})
	if err != nil {
		return "", false, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", false, jwt.ErrSignatureInvalid
	}

	sub, _ := claims["sub"].(string)
	admin, _ := claims["super_admin"].(bool)
	return sub, admin, nil
}
