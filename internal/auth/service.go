package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jalpan25/sweetshop-management-system/internal/session"
)

// Service содержит логику входа, регистрации и выхода
// Связывает удалённый auth API с локальным хранилищем сессии
type Service struct {
	api      AuthAPI
	sessions *session.Store
	logger   *zap.Logger
}

// NewService создаёт auth сервис
func NewService(api AuthAPI, sessions *session.Store, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// SignIn выполняет вход и сохраняет сессию
func (s *Service) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("Sign-in failed", zap.String("email", email), zap.Error(err))
		return session.Session{}, err
	}

	if err := s.sessions.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("Signed in",
		zap.String("email", sess.User.Email),
		zap.String("role", string(sess.User.Role)))
	return sess, nil
}

// SignUp регистрирует нового пользователя
// Сессию не создаёт - после регистрации пользователь входит отдельно
func (s *Service) SignUp(ctx context.Context, name, email, password string, role session.Role) error {
	if err := s.api.Register(ctx, name, email, password, role); err != nil {
		s.logger.Warn("Registration failed", zap.String("email", email), zap.Error(err))
		return err
	}
	s.logger.Info("Registered", zap.String("email", email), zap.String("role", string(role)))
	return nil
}

// SignOut удаляет сохранённую сессию
func (s *Service) SignOut() error {
	if err := s.sessions.Clear(); err != nil {
		return err
	}
	s.logger.Info("Signed out")
	return nil
}

// Current возвращает активную сессию
// Возвращает session.ErrNotFound, если пользователь не входил
func (s *Service) Current() (session.Session, error) {
	return s.sessions.Load()
}
