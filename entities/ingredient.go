package entities

import (
	"github.com/google/uuid"
)

// Ingredient is reference data loaded once from the catalog CSV.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"size:200;index;uniqueIndex:idx_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:50;uniqueIndex:idx_name_unit" json:"measurement_unit"`
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"size:50;uniqueIndex" json:"name"`
	Color string    `gorm:"size:7;uniqueIndex" json:"color"`
	Slug  string    `gorm:"size:50;uniqueIndex" json:"slug"`
}
