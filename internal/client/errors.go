// Package client содержит классификацию ошибок удалённого API магазина.
// Реализация транспорта живёт в подпакете http; store и auth зависят
// только от этих типов, не зная о деталях HTTP.
package client

import (
	"errors"
	"fmt"
)

// ErrAuthExpired возвращается при протухшем или невалидном токене
// Получатель обязан снести сессию и отправить пользователя на вход
var ErrAuthExpired = errors.New("authorization expired")

// TransportError представляет сетевую ошибку уровня соединения
// Показывается пользователю как общая повторяемая ошибка
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sweet shop API unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError представляет отказ сервера с человекочитаемым сообщением
// Message показывается пользователю дословно - сервер формулирует
// доменные отказы сам (например "Sweet is out of stock")
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("sweet shop API rejected request (status %d)", e.StatusCode)
}
