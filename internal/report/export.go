package report

import (
	"bytes"
	"fmt"
	"strings"

	"amalkitchen-be/internal/utils"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportPDF renders the prep sheet as a printable tabular document for
// the kitchen wall.
func ExportPDF(sheet *PrepSheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Prep Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(190, 10, "Prep Sheet", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(190, 6, sheet.GeneratedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, group := range sheet.Groups {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(190, 8, group.Category, "", 1, "L", false, 0, "")

		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Price", "1", 0, "R", true, 0, "")
		pdf.CellFormat(40, 7, "Subtotal", "1", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, line := range group.Lines {
			title := line.Title
			if line.Unit != "" {
				title = fmt.Sprintf("%s (%s)", title, line.Unit)
			}
			pdf.CellFormat(90, 7, title, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 7, utils.FormatMoney(line.Price), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, utils.FormatMoney(line.Subtotal), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render prep sheet pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the prep sheet as a spreadsheet, one sheet per
// category.
func ExportXLSX(sheet *PrepSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, group := range sheet.Groups {
		name := sheetName(group.Category)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		header := []any{"Item", "Unit", "Qty", "Price", "Subtotal"}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return nil, err
		}

		for rowIdx, line := range group.Lines {
			cell := fmt.Sprintf("A%d", rowIdx+2)
			row := []any{line.Title, line.Unit, line.Quantity, line.Price, line.Subtotal}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write prep sheet workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Excel limits sheet names to 31 characters and forbids a handful of
// punctuation characters.
func sheetName(category string) string {
	name := category
	for _, bad := range []string{"/", "\\", "?", "*", "[", "]", ":"} {
		name = strings.ReplaceAll(name, bad, " ")
	}
	if len(name) > 31 {
		name = name[:31]
	}
	if name == "" {
		name = uncategorized
	}
	return name
}
