package models

// Notification — вычисляемое уведомление о состоянии подписки.
// Не хранится в базе: формируется заново при каждом запросе
// из активных подписок пользователя и текущего времени.
type Notification struct {
	SubscriptionID int    `json:"subscription_id"`
	Message        string `json:"message"`
}
