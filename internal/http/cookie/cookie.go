// Package cookie инкапсулирует работу с сессионной cookie.
// Токен доступа передаётся только через httpOnly cookie и
// недоступен клиентскому JavaScript.
package cookie

import "net/http"

// Name — имя сессионной cookie с токеном доступа.
const Name = "subscr_system"

// Set записывает токен в сессионную cookie.
func Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// Clear удаляет сессионную cookie.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Token возвращает токен из cookie запроса.
// Отсутствие cookie не отличается от пустого значения.
func Token(r *http.Request) string {
	c, err := r.Cookie(Name)
	if err != nil {
		return ""
	}
	return c.Value
}
