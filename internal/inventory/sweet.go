package inventory

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Sweet представляет товар витрины
// Это доменная модель клиента: количество здесь - зеркало серверного значения,
// клиент его не пересчитывает сам, а принимает из ответов сервера
type Sweet struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetInput содержит поля формы создания/редактирования товара
// Валидируется на клиенте до отправки, сервер валидирует повторно
type SweetInput struct {
	Name     string  `validate:"required"`
	Category string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Quantity int     `validate:"gte=0"`
}

var inputValidate = validator.New()

// Validate проверяет поля формы: непустые имя и категория,
// неотрицательные цена и количество
func (in SweetInput) Validate() error {
	if err := inputValidate.Struct(in); err != nil {
		return fmt.Errorf("invalid sweet fields: %w", err)
	}
	return nil
}
