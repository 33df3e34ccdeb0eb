package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name         string
		plan         string
		mealTypes    []string
		deliveryDays []string
		want         float64
	}{
		{
			name:         "diet, 2 приема пищи, 3 дня",
			plan:         PlanDiet,
			mealTypes:    []string{"breakfast", "dinner"},
			deliveryDays: []string{"monday", "wednesday", "friday"},
			want:         774000, // 30000 * 2 * 3 * 4.3
		},
		{
			name:         "protein, 1 прием пищи, 1 день",
			plan:         PlanProtein,
			mealTypes:    []string{"lunch"},
			deliveryDays: []string{"sunday"},
			want:         172000,
		},
		{
			name:         "royal, все приемы пищи, вся неделя",
			plan:         PlanRoyal,
			mealTypes:    []string{"breakfast", "lunch", "dinner"},
			deliveryDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
			want:         5418000,
		},
		{
			name:         "дубликаты считаются дважды",
			plan:         PlanDiet,
			mealTypes:    []string{"breakfast", "breakfast"},
			deliveryDays: []string{"monday"},
			want:         258000,
		},
		{
			name:         "неизвестный тариф дает ноль",
			plan:         "premium",
			mealTypes:    []string{"breakfast"},
			deliveryDays: []string{"monday"},
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPrice(tt.plan, tt.mealTypes, tt.deliveryDays)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestUnitPrice(t *testing.T) {
	assert.Equal(t, float64(30000), UnitPrice(PlanDiet))
	assert.Equal(t, float64(40000), UnitPrice(PlanProtein))
	assert.Equal(t, float64(60000), UnitPrice(PlanRoyal))
	assert.Equal(t, float64(0), UnitPrice("unknown"))
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan(PlanDiet))
	assert.True(t, ValidPlan(PlanProtein))
	assert.True(t, ValidPlan(PlanRoyal))
	assert.False(t, ValidPlan(""))
	assert.False(t, ValidPlan("Diet"))
}
