package search

import (
	"strconv"
	"strings"
)

// RawCriteria содержит сырые значения полей формы поиска
// Все поля - текст, как они приходят из полей ввода
type RawCriteria struct {
	Name     string
	Category string
	MinPrice string
	MaxPrice string
}

// Criteria представляет нормализованный набор фильтров поиска
// Пустое поле означает "фильтр не задан", а не "совпадение с пустой строкой" -
// отсутствующие поля вообще не попадают в параметры запроса
type Criteria struct {
	// Name подстрока имени (регистронезависимое совпадение на сервере)
	Name string
	// Category подстрока категории
	Category string
	// MinPrice нижняя граница цены (включительно), nil = не задана
	MinPrice *float64
	// MaxPrice верхняя граница цены (включительно), nil = не задана
	MaxPrice *float64
}

// Normalize превращает сырые поля формы в Criteria
// Пустые после trim поля отбрасываются; цена, которая не парсится как число,
// тоже отбрасывается - поля ввода текстовые, мусор не считается ошибкой
func Normalize(raw RawCriteria) Criteria {
	c := Criteria{
		Name:     strings.TrimSpace(raw.Name),
		Category: strings.TrimSpace(raw.Category),
	}
	c.MinPrice = parsePrice(raw.MinPrice)
	c.MaxPrice = parsePrice(raw.MaxPrice)
	return c
}

// IsEmpty сообщает, что ни один фильтр не задан
// Пустые Criteria означают "загрузить без фильтра", никогда "ничего не загружать"
func (c Criteria) IsEmpty() bool {
	return c.Name == "" && c.Category == "" && c.MinPrice == nil && c.MaxPrice == nil
}

// QueryParams возвращает параметры запроса для передачи на сервер
// Ключи соответствуют параметрам endpoint /sweets/search
// Незаданные поля в результат не включаются
func (c Criteria) QueryParams() map[string]string {
	params := make(map[string]string)
	if c.Name != "" {
		params["name"] = c.Name
	}
	if c.Category != "" {
		params["category"] = c.Category
	}
	if c.MinPrice != nil {
		params["minPrice"] = strconv.FormatFloat(*c.MinPrice, 'f', -1, 64)
	}
	if c.MaxPrice != nil {
		params["maxPrice"] = strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64)
	}
	return params
}

// parsePrice парсит текстовое значение цены
// Пустая строка и непарсящееся значение дают nil
func parsePrice(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}
