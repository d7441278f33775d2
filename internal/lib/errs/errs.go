// Package errs определяет классы ошибок бизнес-логики, которые HTTP-слой
// отображает в статусы ответов. Сообщение ошибки — это детализация,
// возвращаемая клиенту.
package errs

import "errors"

// Kind — класс ошибки бизнес-логики.
type Kind int

// Классы ошибок. Проверка владения всегда выполняется после проверки
// существования, поэтому KindNotFound и KindForbidden никогда не конкурируют
// за одну и ту же ситуацию.
const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindConflict
	KindUnauthorized
)

// Error — ошибка бизнес-логики с классом и сообщением для клиента.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Kind возвращает класс ошибки.
func (e *Error) Kind() Kind { return e.kind }

// NotFound возвращает ошибку «сущность не найдена».
func NotFound(msg string) error { return &Error{kind: KindNotFound, msg: msg} }

// Forbidden возвращает ошибку «сущность принадлежит другому пользователю».
func Forbidden(msg string) error { return &Error{kind: KindForbidden, msg: msg} }

// Conflict возвращает ошибку нарушения состояния: неактивный пользователь,
// отменённая подписка, дубликат уникального ключа.
func Conflict(msg string) error { return &Error{kind: KindConflict, msg: msg} }

// Unauthorized возвращает ошибку аутентификации.
func Unauthorized(msg string) error { return &Error{kind: KindUnauthorized, msg: msg} }

// KindOf возвращает класс ошибки или 0, если ошибка не из этого пакета.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return 0
}
