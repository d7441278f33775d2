package models

// PaymentStatus — статус платежа.
type PaymentStatus string

// Платёж создаётся в статусе CREATED; дальнейшее значение статуса
// выставляется владельцем без проверки переходов.
const (
	PaymentCreated  PaymentStatus = "CREATED"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentExpired  PaymentStatus = "EXPIRED"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// Valid сообщает, является ли значение известным статусом платежа.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentCreated, PaymentPaid, PaymentExpired, PaymentCanceled:
		return true
	}
	return false
}

// Payment представляет попытку оплаты подписки выбранным способом оплаты.
type Payment struct {
	ID              int           `json:"id"`
	SubscriptionID  int           `json:"subscription_id"`
	PaymentMethodID int           `json:"payment_method_id"`
	Amount          float64       `json:"amount"`
	Status          PaymentStatus `json:"status"`
	OpenDate        string        `json:"open_date"`
	UserID          int           `json:"user_id"`
}

// DummyPayment используется для приёма данных из JSON-запроса на создание платежа.
type DummyPayment struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	SubscriptionID  int     `json:"subscription_id" validate:"required"`
	PaymentMethodID int     `json:"payment_method_id" validate:"required"`
}

// DummyPaymentStatus используется для приёма запроса на смену статуса платежа.
type DummyPaymentStatus struct {
	PaymentID int    `json:"payment_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=CREATED PAID EXPIRED CANCELED"`
}
