// Package ux отвечает за отрисовку витрины в терминале.
// Здесь нет никакой политики - только представление: все пороги
// и категории приходят уже вычисленными из store и stock.
package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
	"github.com/Jalpan25/sweetshop-management-system/internal/stock"
	"github.com/Jalpan25/sweetshop-management-system/internal/store"
)

var (
	colorCandy   = lipgloss.Color("#E56399") // акцент витрины
	colorSuccess = lipgloss.Color("#2CD7A7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#7F8C8D")
)

// Styles - преднастроенные lipgloss-стили витрины
var Styles = struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorCandy),
	Header:  lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorSuccess),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCandy).
		Padding(0, 1),
}

// StockBadge возвращает текстовый бейдж категории остатка
func StockBadge(level stock.Level) string {
	switch level {
	case stock.LevelOutOfStock:
		return Styles.Error.Render("out of stock")
	case stock.LevelLow:
		return Styles.Warning.Render("low stock")
	default:
		return Styles.Success.Render("in stock")
	}
}

// RenderSweets отрисовывает список товаров построчно
func RenderSweets(sweets []inventory.Sweet, policy stock.Policy) string {
	if len(sweets) == 0 {
		return Styles.Muted.Render("No sweets found")
	}

	var b strings.Builder
	b.WriteString(Styles.Header.Render(fmt.Sprintf("%-6s %-20s %-14s %10s %6s  %s",
		"ID", "NAME", "CATEGORY", "PRICE", "QTY", "STOCK")))
	b.WriteString("\n")
	for _, s := range sweets {
		b.WriteString(fmt.Sprintf("%-6s %-20s %-14s %10.2f %6d  %s\n",
			s.ID, s.Name, s.Category, s.Price, s.Quantity,
			StockBadge(policy.Classify(s.Quantity))))
	}
	return b.String()
}

// RenderSummary отрисовывает сводку витрины для менеджера
func RenderSummary(sum store.Summary) string {
	line := fmt.Sprintf("%s products   %s total stock   %s low   %s out",
		Styles.Title.Render(fmt.Sprintf("%d", sum.TotalProducts)),
		Styles.Header.Render(fmt.Sprintf("%d", sum.TotalStock)),
		Styles.Warning.Render(fmt.Sprintf("%d", sum.LowStock)),
		Styles.Error.Render(fmt.Sprintf("%d", sum.OutOfStock)))
	return Styles.Box.Render(line)
}

// Successf печатает сообщение об успехе
func Successf(format string, args ...any) {
	fmt.Println(Styles.Success.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Errorf печатает сообщение об ошибке
func Errorf(format string, args ...any) {
	fmt.Println(Styles.Error.Render("✗ " + fmt.Sprintf(format, args...)))
}
