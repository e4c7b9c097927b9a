package repository

import (
	"fmt"

	"restaurant-pos/internal/models"
)

// DefaultTables returns the initial table registry. The order store owns
// table status after seeding; this registry only supplies the floor plan.
func DefaultTables(count int) []models.Table {
	tables := make([]models.Table, 0, count)
	for i := 1; i <= count; i++ {
		tables = append(tables, models.Table{
			ID:     fmt.Sprintf("t%d", i),
			Number: i,
			Status: models.TableAvailable,
		})
	}
	return tables
}
