// Package jwt реализует выпуск и проверку токенов доступа,
// которые сервер передаёт клиенту в cookie.
//
// Полезная нагрузка токена — почта пользователя и срок действия.
// Подпись симметричная (HS256), секрет и время жизни задаются при создании
// Maker, что позволяет подставлять фиксированные значения в тестах.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает полезную нагрузку токена: {mail, exp}.
type Claims struct {
	Mail                 string `json:"mail"` // Почта пользователя
	jwt.RegisteredClaims        // Стандартные claims, используется только ExpiresAt
}

// Maker описывает интерфейс выпуска и проверки токенов.
type Maker interface {
	// CreateToken выпускает подписанный токен для указанной почты.
	CreateToken(mail string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на секретном ключе и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewMaker создаёт MakerImpl с указанным секретом и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
