package models

import "time"

// DashboardMetrics — агрегаты административной панели за период.
//
// Reactivations — приближение: количество активных подписок, обновлённых
// в периоде. Настоящего журнала смен состояний система не ведет.
type DashboardMetrics struct {
	NewSubscriptions        int       `json:"new_subscriptions"`
	ActiveSubscriptions     int       `json:"active_subscriptions"`
	PausedSubscriptions     int       `json:"paused_subscriptions"`
	MonthlyRecurringRevenue float64   `json:"monthly_recurring_revenue"`
	Reactivations           int       `json:"reactivations"`
	DateRangeStart          time.Time `json:"date_range_start"`
	DateRangeEnd            time.Time `json:"date_range_end"`
}
