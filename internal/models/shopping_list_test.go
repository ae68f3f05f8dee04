package models_test

import (
	"testing"
	"time"

	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/stretchr/testify/assert"
)

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.ShoppingDateLayout)
}

func TestGetStatus(t *testing.T) {
	t.Run("Completed wins over any date", func(t *testing.T) {
		list := &models.ShoppingList{IsCompleted: true, ShoppingDate: dateOffset(-10)}
		assert.Equal(t, models.StatusCompleted, list.GetStatus())

		list.ShoppingDate = dateOffset(10)
		assert.Equal(t, models.StatusCompleted, list.GetStatus())
	})

	t.Run("Today", func(t *testing.T) {
		list := &models.ShoppingList{ShoppingDate: dateOffset(0)}
		assert.Equal(t, models.StatusToday, list.GetStatus())
	})

	t.Run("Overdue", func(t *testing.T) {
		list := &models.ShoppingList{ShoppingDate: dateOffset(-1)}
		assert.Equal(t, models.StatusOverdue, list.GetStatus())
	})

	t.Run("Upcoming", func(t *testing.T) {
		list := &models.ShoppingList{ShoppingDate: dateOffset(1)}
		assert.Equal(t, models.StatusUpcoming, list.GetStatus())
	})

	t.Run("Unparseable date falls back to upcoming", func(t *testing.T) {
		list := &models.ShoppingList{ShoppingDate: "not-a-date"}
		assert.Equal(t, models.StatusUpcoming, list.GetStatus())
	})
}

func TestCalculateCompletion(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		checked int
		want    int
	}{
		{"Empty list", 0, 0, 0},
		{"Nothing checked", 4, 0, 0},
		{"Half checked", 4, 2, 50},
		{"Everything checked", 4, 4, 100},
		{"Rounds down", 3, 1, 33},
		{"Rounds up", 3, 2, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := &models.ShoppingList{ItemsCount: tt.total, CheckedItemsCount: tt.checked}
			assert.Equal(t, tt.want, list.CalculateCompletion())
		})
	}
}

func TestIsValidUnit(t *testing.T) {
	for _, unit := range models.Units {
		assert.True(t, models.IsValidUnit(unit), unit)
	}

	assert.False(t, models.IsValidUnit("lb"))
	assert.False(t, models.IsValidUnit(""))
	assert.False(t, models.IsValidUnit("KG"))
}
