package store

import (
	"context"

	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
)

// SweetAPI определяет интерфейс удалённого API инвентаря
// Store зависит от этого интерфейса, а не от конкретного транспорта -
// в тестах он подменяется настраиваемым фейком
type SweetAPI interface {
	// FetchAll возвращает полный список товаров без фильтра
	FetchAll(ctx context.Context) ([]inventory.Sweet, error)

	// Search возвращает отфильтрованный список
	// Сопоставление выполняет сервер, клиент только передаёт параметры
	Search(ctx context.Context, params map[string]string) ([]inventory.Sweet, error)

	// Purchase списывает указанное количество и возвращает обновлённый товар
	Purchase(ctx context.Context, id string, quantity int) (inventory.Sweet, error)

	// Restock добавляет указанное количество и возвращает обновлённый товар
	Restock(ctx context.Context, id string, quantity int) (inventory.Sweet, error)
}
