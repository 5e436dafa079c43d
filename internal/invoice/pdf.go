package invoice

import (
	"bytes"
	"fmt"
	"os"

	"amalkitchen-be/internal/order"
	"amalkitchen-be/internal/utils"

	"github.com/jung-kurt/gofpdf"
)

// Banking details printed on every proforma invoice for EFT payers.
const (
	bankName      = "First National Bank"
	bankAccName   = "Amal's Kitchen"
	bankAccNumber = "62884123456"
	bankBranch    = "250655"
)

const proofOfPaymentNote = "Please use your order number as the payment reference and send us your proof of payment before collection."

// RenderPDF builds the proforma invoice document for a persisted order.
// The logo is optional; when the file is missing the header simply
// renders without it.
func RenderPDF(o *order.Order, logoPath string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Proforma Invoice %s", o.OrderNumber), false)
	pdf.AddPage()

	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			pdf.ImageOptions(logoPath, 10, 10, 35, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(10, 14)
	pdf.CellFormat(190, 10, "PROFORMA INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(10, 40)
	info := [][2]string{
		{"Order Number", o.OrderNumber},
		{"Date", o.CreatedAt.Format("02 Jan 2006")},
		{"Customer", o.CustomerName},
		{"Contact", contactLine(o)},
		{"Email", o.Email},
		{"Region", o.Region},
		{"Branch", o.Branch},
		{"Payment Method", string(o.PaymentMethod)},
	}
	for _, row := range info {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(150, 6, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range o.Items {
		title := item.Title
		if item.Unit != "" {
			title = fmt.Sprintf("%s (%s)", title, item.Unit)
		}
		pdf.CellFormat(90, 7, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, utils.FormatMoney(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, utils.FormatMoney(item.Subtotal()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatMoney(o.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(190, 6, "Banking Details (EFT)", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	banking := [][2]string{
		{"Bank", bankName},
		{"Account Name", bankAccName},
		{"Account Number", bankAccNumber},
		{"Branch Code", bankBranch},
		{"Reference", o.OrderNumber},
	}
	for _, row := range banking {
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(150, 6, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(190, 5, proofOfPaymentNote, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func contactLine(o *order.Order) string {
	if o.CellNumber != "" {
		return o.CellNumber
	}
	return o.PhoneNumber
}
