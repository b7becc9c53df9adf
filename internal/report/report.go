// Package report renders printable cost sheets for dishes.
package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"primecost/models"
)

// BuildCostSheet renders a PDF cost breakdown for the dish. The dish must
// have its associations and their ingredients (with units) loaded.
func BuildCostSheet(dish models.Dish) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, fmt.Sprintf("Cost Sheet: %s", dish.Name))
	pdf.Ln(12)

	if dish.Description != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(190, 5, dish.Description, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Ingredient", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Unit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Cost", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, association := range dish.Ingredients {
		if association.Ingredient == nil {
			continue
		}
		ingredient := association.Ingredient
		designation := ""
		if ingredient.Unit != nil {
			designation = ingredient.Unit.Designation
		}
		lineCost := association.Amount * ingredient.Price.InexactFloat64()

		pdf.CellFormat(70, 8, ingredient.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%g", association.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, designation, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, ingredient.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", lineCost), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(155, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", dish.TotalCost()), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render cost sheet: %w", err)
	}
	return buf.Bytes(), nil
}
