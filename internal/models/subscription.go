package models

// DateLayout — формат хранения дат подписок и платежей.
// Даты лежат в базе текстом, совместимым с ISO-8601.
const DateLayout = "2006-01-02T15:04:05.999999"

// SubscriptionRate — тарифный план подписки.
type SubscriptionRate string

// Поддерживаемые тарифные планы.
const (
	RateStandard SubscriptionRate = "STANDARD"
	RatePremium  SubscriptionRate = "PREMIUM"
	RateFamily   SubscriptionRate = "FAMILY"
)

// Valid сообщает, является ли значение известным тарифным планом.
func (r SubscriptionRate) Valid() bool {
	switch r {
	case RateStandard, RatePremium, RateFamily:
		return true
	}
	return false
}

// Subscription представляет подписку пользователя.
// EndDate вычисляется один раз при создании как OpenDate плюс Duration дней
// и при обновлениях не пересчитывается.
type Subscription struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Type            SubscriptionRate `json:"type"`
	Price           float64          `json:"price"`
	IsActive        bool             `json:"is_active"`
	Duration        int              `json:"duration"` // Срок действия в днях
	AutoRenew       bool             `json:"auto_renew"`
	OpenDate        string           `json:"open_date"`
	EndDate         string           `json:"end_date"`
	UserID          int              `json:"user_id"`
	PaymentMethodID *int             `json:"payment_method_id"`
}

// DummySubscription используется для приёма данных из JSON-запроса
// на оформление подписки.
type DummySubscription struct {
	Name            string  `json:"name" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=STANDARD PREMIUM FAMILY"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Duration        int     `json:"duration" validate:"required,gt=0"` // Дни
	AutoRenew       bool    `json:"auto_renew"`
	PaymentMethodID *int    `json:"payment_method_id"`
}

// SubscriptionUpdate описывает частичное обновление подписки.
// Изменяемы только перечисленные поля; даты и признак активности
// через обновление не меняются.
type SubscriptionUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Type            *string  `json:"type,omitempty" validate:"omitempty,oneof=STANDARD PREMIUM FAMILY"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Duration        *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	AutoRenew       *bool    `json:"auto_renew,omitempty"`
	PaymentMethodID *int     `json:"payment_method_id,omitempty"`
}
