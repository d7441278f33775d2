package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// CreateToken выпускает токен с почтой пользователя, подписанный секретным ключом.
// Срок действия отсчитывается от текущего момента и равен tokenTTL.
func (m *MakerImpl) CreateToken(mail string) (string, error) {
	claims := Claims{
		Mail: mail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(m.now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// ParseToken проверяет подпись и срок действия токена и возвращает Claims.
// Просроченный, повреждённый и подписанный чужим ключом токены неразличимы
// для вызывающего: во всех случаях возвращается ошибка.
func (m *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
