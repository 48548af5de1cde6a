package inventory

import "errors"

// Локальные ошибки валидации операций
// Они возникают до обращения к сети и никогда не меняют состояние витрины

// ErrInvalidQuantity возвращается для неположительного количества
// или покупки сверх разрешённого лимита
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrUnauthorized возвращается, когда роль не даёт права на операцию
// Проверка подсказочная - настоящая авторизация на сервере
var ErrUnauthorized = errors.New("operation not permitted for this role")

// ErrOutOfStock возвращается при попытке купить товар с нулевым остатком
var ErrOutOfStock = errors.New("sweet is out of stock")
