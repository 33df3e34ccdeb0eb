// Package pricing реализует расчет стоимости подписки на питание.
//
// Формула фиксирована бизнесом: цена тарифа умножается на количество
// выбранных приемов пищи, количество дней доставки и средний коэффициент
// недель в месяце (4.3).
package pricing

// WeeksPerMonth — усредненное количество недель в месяце, бизнес-константа.
const WeeksPerMonth = 4.3

// Тарифные планы.
const (
	PlanDiet    = "diet"
	PlanProtein = "protein"
	PlanRoyal   = "royal"
)

// unitPrices — стоимость одного приема пищи по тарифу.
// Таблица неизменяема после инициализации процесса.
var unitPrices = map[string]float64{
	PlanDiet:    30000,
	PlanProtein: 40000,
	PlanRoyal:   60000,
}

// UnitPrice возвращает стоимость одного приема пищи для тарифа plan.
// Для неизвестного тарифа возвращает 0 — исторический контракт;
// принадлежность тарифа словарю проверяется на уровне сервиса до расчета.
func UnitPrice(plan string) float64 {
	return unitPrices[plan]
}

// ValidPlan сообщает, входит ли тариф в фиксированный словарь.
func ValidPlan(plan string) bool {
	_, ok := unitPrices[plan]
	return ok
}

// TotalPrice считает месячную стоимость подписки.
//
// Дубликаты в mealTypes и deliveryDays не схлопываются: считается
// количество выбранных позиций, а не уникальных значений.
func TotalPrice(plan string, mealTypes, deliveryDays []string) float64 {
	return UnitPrice(plan) * float64(len(mealTypes)) * float64(len(deliveryDays)) * WeeksPerMonth
}
