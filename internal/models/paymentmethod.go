package models

// PaymentMethod представляет платёжный инструмент пользователя.
// Номер карты уникален среди всех строк, включая деактивированные.
// Удаление всегда мягкое: строка остаётся, is_active становится false.
type PaymentMethod struct {
	ID         int    `json:"id"`
	Type       string `json:"type"` // Тип инструмента, например "карта" или "PayPal"
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        int    `json:"cvv"`
	IsActive   bool   `json:"is_active"`
	UserID     int    `json:"user_id"`
}

// DummyPaymentMethod используется для приёма данных из JSON-запроса
// на добавление способа оплаты.
type DummyPaymentMethod struct {
	Type       string `json:"type" validate:"required"`
	CardNumber string `json:"card_number" validate:"required,numeric"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        int    `json:"cvv" validate:"required"`
}

// PaymentMethodUpdate описывает частичное обновление способа оплаты.
type PaymentMethodUpdate struct {
	Type       *string `json:"type,omitempty"`
	CardNumber *string `json:"card_number,omitempty" validate:"omitempty,numeric"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	CVV        *int    `json:"cvv,omitempty"`
}
