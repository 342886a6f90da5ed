package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIngredients(t *testing.T) {
	in := strings.NewReader("абрикосовое варенье,г\nвода,мл\n")

	ingredients, err := readIngredients(in)
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "абрикосовое варенье", ingredients[0].Name)
	assert.Equal(t, "г", ingredients[0].MeasurementUnit)
	assert.Equal(t, "вода", ingredients[1].Name)
	assert.Equal(t, "мл", ingredients[1].MeasurementUnit)
}

func TestReadIngredientsSkipsBlankFields(t *testing.T) {
	in := strings.NewReader("соль,г\n,г\nперец,\n")

	ingredients, err := readIngredients(in)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "соль", ingredients[0].Name)
}

func TestReadIngredientsRejectsWrongColumnCount(t *testing.T) {
	in := strings.NewReader("соль,г,лишнее\n")

	_, err := readIngredients(in)
	assert.Error(t, err)
}
