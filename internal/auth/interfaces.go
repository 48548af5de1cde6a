package auth

import (
	"context"

	"github.com/Jalpan25/sweetshop-management-system/internal/session"
)

// AuthAPI определяет интерфейс удалённого auth API
// Service зависит от интерфейса, а не от HTTP-реализации -
// в тестах он подменяется фейком
type AuthAPI interface {
	// Login аутентифицирует пользователя и возвращает сессию с токеном
	Login(ctx context.Context, email, password string) (session.Session, error)

	// Register регистрирует нового пользователя с указанной ролью
	Register(ctx context.Context, name, email, password string, role session.Role) error
}
