package stock

// Level представляет производную категорию остатка товара
// Категория никогда не хранится - всегда вычисляется заново из актуального количества
type Level string

const (
	// LevelOutOfStock - товар закончился (quantity = 0)
	LevelOutOfStock Level = "OUT_OF_STOCK"
	// LevelLow - товар заканчивается (1 <= quantity <= LowStockMax)
	LevelLow Level = "LOW_STOCK"
	// LevelIn - товара достаточно (quantity > LowStockMax)
	LevelIn Level = "IN_STOCK"
)

// Policy задаёт пороги классификации остатков и лимит разовой покупки
// Пороги вынесены в структуру, а не в константы - разные витрины исторически
// использовали разные значения, дефолт соответствует основной витрине
type Policy struct {
	// LowStockMax верхняя граница LevelLow (включительно)
	LowStockMax int
	// PurchaseCap максимальное количество за одну покупку, независимо от остатка
	PurchaseCap int
}

// Default - пороговые значения основной витрины: 0 / 1..5 / >5, лимит покупки 10
var Default = Policy{
	LowStockMax: 5,
	PurchaseCap: 10,
}

// Classify возвращает категорию остатка для указанного количества
// Тотальная функция: отрицательное количество трактуется как ноль,
// клиент сам никогда не вычисляет отрицательный остаток
func (p Policy) Classify(quantity int) Level {
	switch {
	case quantity <= 0:
		return LevelOutOfStock
	case quantity <= p.LowStockMax:
		return LevelLow
	default:
		return LevelIn
	}
}

// PurchaseCeiling возвращает максимальное количество для одной покупки:
// min(quantity, PurchaseCap). Для нулевого остатка возвращает 0
func (p Policy) PurchaseCeiling(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	if quantity > p.PurchaseCap {
		return p.PurchaseCap
	}
	return quantity
}
