package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"foodgram/entities"
	"foodgram/pkg/ingredient"
	"io"
	"os"

	"gorm.io/gorm"
)

// SeedIngredients loads the ingredient reference catalog from a CSV file
// with rows of the form "name,measurement_unit".
func SeedIngredients(db *gorm.DB, csvPath string) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open ingredients csv: %w", err)
	}
	defer file.Close()

	ingredients, err := readIngredients(file)
	if err != nil {
		return fmt.Errorf("read ingredients csv: %w", err)
	}
	if len(ingredients) == 0 {
		return nil
	}

	repo := ingredient.NewIngredientRepository(db)
	if err := repo.BulkCreateIngredients(context.Background(), ingredients); err != nil {
		return fmt.Errorf("insert ingredients: %w", err)
	}

	fmt.Printf("Seeded %d ingredients\n", len(ingredients))
	return nil
}

func readIngredients(r io.Reader) ([]*entities.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	ingredients := make([]*entities.Ingredient, 0, len(records))
	for _, record := range records {
		if record[0] == "" || record[1] == "" {
			continue
		}
		ingredients = append(ingredients, &entities.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
	}
	return ingredients, nil
}
