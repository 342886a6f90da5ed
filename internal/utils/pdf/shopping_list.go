package pdf

import (
	"bytes"
	"foodgram/domain"
	"fmt"
	"github.com/jung-kurt/gofpdf"
)

// RenderShoppingList turns the aggregated items into a one-page-or-more
// PDF. The items arrive already ordered; rendering preserves that order.
func RenderShoppingList(fullName string, items []domain.ShoppingItem) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Shopping list", true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, fmt.Sprintf("%s, here is your shopping list:", fullName))
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 12)
	for _, item := range items {
		line := fmt.Sprintf("- %s (%s) - %d", item.Name, item.MeasurementUnit, item.Amount)
		doc.Cell(0, 8, line)
		doc.Ln(8)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
