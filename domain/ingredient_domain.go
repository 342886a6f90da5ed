package domain

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient detail"
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetTag         = "success get tag detail"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient detail"
	MessageFailedGetTags        = "failed to get tags"
	MessageFailedGetTag         = "failed to get tag detail"
)

type (
	Ingredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	Tag struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
)
