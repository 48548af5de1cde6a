package ux

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
	"github.com/Jalpan25/sweetshop-management-system/internal/session"
)

// Credentials запрашивает email и пароль
func Credentials() (email, password string, err error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(notBlank("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(notBlank("password")),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return email, password, nil
}

// RegisterForm запрашивает данные нового пользователя
func RegisterForm() (name, email, password string, role session.Role, err error) {
	roleValue := string(session.RoleCustomer)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(notBlank("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(notBlank("password")),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Customer", string(session.RoleCustomer)),
					huh.NewOption("Shop manager", string(session.RoleManager)),
				).
				Value(&roleValue),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", "", "", err
	}
	return name, email, password, session.Role(roleValue), nil
}

// SweetForm запрашивает поля товара
// initial задаёт значения по умолчанию при редактировании
func SweetForm(initial inventory.SweetInput) (inventory.SweetInput, error) {
	name := initial.Name
	category := initial.Category
	price := formatPrice(initial.Price)
	quantity := strconv.Itoa(initial.Quantity)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Category").
				Value(&category).
				Validate(notBlank("category")),
			huh.NewInput().
				Title("Price").
				Value(&price).
				Validate(decimalField),
			huh.NewInput().
				Title("Quantity").
				Value(&quantity).
				Validate(integerField),
		),
	)
	if err := form.Run(); err != nil {
		return inventory.SweetInput{}, err
	}

	priceValue, _ := strconv.ParseFloat(strings.TrimSpace(price), 64)
	quantityValue, _ := strconv.Atoi(strings.TrimSpace(quantity))

	input := inventory.SweetInput{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Price:    priceValue,
		Quantity: quantityValue,
	}
	// Финальная проверка той же схемой, что и у серверной формы
	if err := input.Validate(); err != nil {
		return inventory.SweetInput{}, err
	}
	return input, nil
}

// QuantityPrompt запрашивает количество для покупки или пополнения
// ceiling > 0 ограничивает допустимый максимум
func QuantityPrompt(title string, ceiling int) (int, error) {
	value := "1"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(ceilingHint(ceiling)).
				Value(&value).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("enter a positive whole number")
					}
					if ceiling > 0 && n > ceiling {
						return fmt.Errorf("at most %d allowed", ceiling)
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(value))
	return n, nil
}

func ceilingHint(ceiling int) string {
	if ceiling <= 0 {
		return ""
	}
	return fmt.Sprintf("max %d", ceiling)
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func decimalField(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return errors.New("enter a non-negative number")
	}
	return nil
}

func integerField(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return errors.New("enter a non-negative whole number")
	}
	return nil
}

func formatPrice(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
