package inventory

import (
	"github.com/Jalpan25/sweetshop-management-system/internal/session"
	"github.com/Jalpan25/sweetshop-management-system/internal/stock"
)

// Mode определяет тип складской операции
type Mode string

const (
	// ModePurchase - покупка, уменьшает остаток
	ModePurchase Mode = "purchase"
	// ModeRestock - пополнение склада, увеличивает остаток (только менеджер)
	ModeRestock Mode = "restock"
)

// Operation описывает намерение покупки или пополнения
// Это дескриптор запроса: создаётся на одно действие пользователя,
// валидируется локально, отправляется один раз и выбрасывается -
// сам по себе он ничего не мутирует
type Operation struct {
	Mode     Mode
	SweetID  string
	Quantity int
}

// Validate проверяет операцию против текущего остатка и роли
// Порядок правил фиксированный:
//  1. количество должно быть положительным
//  2. пополнение доступно только менеджеру
//  3. покупка ограничена потолком min(остаток, лимит); при нулевом
//     остатке - ErrOutOfStock независимо от запрошенного количества
//  4. пополнение сверху локально не ограничено, сервер может отказать сам
//
// После успешной отправки ответ сервера авторитетен: остаток берётся из
// ответа, а не инкрементируется локально - параллельные покупатели могли
// изменить склад
func (op Operation) Validate(currentQuantity int, role session.Role, policy stock.Policy) error {
	if op.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if op.Mode == ModeRestock && !role.IsManager() {
		return ErrUnauthorized
	}

	if op.Mode == ModePurchase {
		if currentQuantity <= 0 {
			return ErrOutOfStock
		}
		if op.Quantity > policy.PurchaseCeiling(currentQuantity) {
			return ErrInvalidQuantity
		}
	}

	return nil
}
