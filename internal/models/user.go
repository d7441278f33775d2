// Package models содержит доменные структуры системы подписок,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    `json:"id"`        // Уникальный идентификатор пользователя
	Email        string `json:"email"`     // Электронная почта (уникальная)
	PasswordHash string `json:"-"`         // Хэш пароля, наружу не отдается
	IsActive     bool   `json:"is_active"` // Признак активности учетной записи
}

// DummyUser используется для приёма данных из JSON-запроса
// при регистрации и авторизации.
type DummyUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserUpdate описывает частичное обновление пользователя.
// Применяются только явно переданные поля.
type UserUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	IsActive *bool   `json:"is_active,omitempty"`
}
