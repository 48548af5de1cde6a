package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound возвращается, когда сохранённой сессии нет
var ErrNotFound = errors.New("session not found")

// Store сохраняет сессию между запусками клиента
// Файловый аналог браузерного localStorage: токен и профиль
// лежат в JSON-файле в конфигурационной директории пользователя
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore создаёт хранилище сессии по указанному пути файла
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load читает сохранённую сессию
// Возвращает ErrNotFound, если файла нет или сессия пустая
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Повреждённый файл равносилен отсутствию сессии
		return Session{}, ErrNotFound
	}
	if !sess.Active() {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Save записывает сессию на диск
// Файл создаётся с правами 0600 - в нём лежит токен
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear удаляет сохранённую сессию
// Отсутствие файла не считается ошибкой
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
