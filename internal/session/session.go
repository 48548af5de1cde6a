package session

import (
	"context"
)

// Role представляет роль пользователя, как её выдаёт сервер
// На клиенте роль только подсказывает доступные операции,
// реальная авторизация выполняется на сервере
type Role string

const (
	// RoleCustomer - обычный покупатель
	RoleCustomer Role = "ROLE_USER"
	// RoleManager - менеджер магазина, может пополнять склад и управлять товарами
	RoleManager Role = "ROLE_ADMIN"
)

// IsManager сообщает, что роль даёт административные операции
func (r Role) IsManager() bool {
	return r == RoleManager
}

// User представляет профиль вошедшего пользователя
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session содержит токен и профиль активной сессии
// Сессия передаётся явно через context, а не через глобальное состояние -
// так смена роли видна и тестируется, а операция в полёте
// использует роль, зафиксированную на момент валидации
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Active сообщает, что сессия установлена
func (s Session) Active() bool {
	return s.Token != ""
}

type ctxKeySession struct{}

var sessionKey = ctxKeySession{}

// WithSession сохраняет сессию в контексте
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext возвращает сессию из контекста, если она была установлена
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
