package migration

import (
	"MealHive-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"family", &entities.Family{}},
		{"family member", &entities.FamilyMember{}},
		{"ingredient", &entities.Ingredient{}},
		{"pantry item", &entities.PantryItem{}},
		{"meal", &entities.Meal{}},
		{"meal ingredient", &entities.MealIngredient{}},
		{"meal plan", &entities.MealPlan{}},
		{"meal plan slot", &entities.MealPlanSlot{}},
		{"grocery list", &entities.GroceryList{}},
		{"grocery list item", &entities.GroceryListItem{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Fatalf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
