package invoice

import (
	"bytes"
	"fmt"
	"html/template"

	"amalkitchen-be/internal/order"
	"amalkitchen-be/internal/utils"
)

var bodyTemplate = template.Must(template.New("invoice").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 560px; margin: 0 auto; color: #333;">
  <h2 style="color: #7a1f1f;">Amal's Kitchen</h2>
  <p>Hi {{.CustomerName}},</p>
  <p>Thank you for your order. Your order number is <strong>{{.OrderNumber}}</strong>.</p>
  <p>
    Collection branch: <strong>{{.Branch}}</strong><br>
    Region: {{.Region}}<br>
    Payment: {{.PaymentMethod}}
  </p>
  <table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
    <tr style="background: #f4f4f4;">
      <th style="text-align: left; padding: 6px; border-bottom: 1px solid #ddd;">Item</th>
      <th style="text-align: center; padding: 6px; border-bottom: 1px solid #ddd;">Qty</th>
      <th style="text-align: right; padding: 6px; border-bottom: 1px solid #ddd;">Price</th>
      <th style="text-align: right; padding: 6px; border-bottom: 1px solid #ddd;">Subtotal</th>
    </tr>
    {{range .Items}}
    <tr>
      <td style="padding: 6px; border-bottom: 1px solid #eee;">{{.Title}}</td>
      <td style="text-align: center; padding: 6px; border-bottom: 1px solid #eee;">{{.Quantity}}</td>
      <td style="text-align: right; padding: 6px; border-bottom: 1px solid #eee;">{{.Price}}</td>
      <td style="text-align: right; padding: 6px; border-bottom: 1px solid #eee;">{{.Subtotal}}</td>
    </tr>
    {{end}}
    <tr>
      <td colspan="3" style="text-align: right; padding: 6px;"><strong>Total</strong></td>
      <td style="text-align: right; padding: 6px;"><strong>{{.Total}}</strong></td>
    </tr>
  </table>
  <p>Your proforma invoice is attached.</p>
  <p style="margin: 4px 0;"><strong>Banking Details (EFT)</strong></p>
  <p style="margin: 4px 0;">
    Bank: {{.BankName}}<br>
    Account Name: {{.BankAccountName}}<br>
    Account Number: {{.BankAccountNumber}}<br>
    Branch Code: {{.BankBranchCode}}<br>
    Reference: <strong>{{.OrderNumber}}</strong>
  </p>
  <p>{{.ProofOfPaymentNote}}</p>
  {{if .StorefrontURL}}
  <p style="margin: 24px 0;">
    <a href="{{.StorefrontURL}}" style="background: #7a1f1f; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">
      Visit our storefront
    </a>
  </p>
  {{end}}
  <p style="font-size: 12px; color: #888;">We will be in touch when your order is ready for collection.</p>
</div>
`))

type bodyItem struct {
	Title    string
	Quantity int
	Price    string
	Subtotal string
}

type bodyData struct {
	CustomerName       string
	OrderNumber        string
	Total              string
	Branch             string
	Region             string
	PaymentMethod      string
	Items              []bodyItem
	BankName           string
	BankAccountName    string
	BankAccountNumber  string
	BankBranchCode     string
	ProofOfPaymentNote string
	StorefrontURL      string
}

func renderBody(o *order.Order, storefrontURL string) (string, error) {
	items := make([]bodyItem, 0, len(o.Items))
	for _, item := range o.Items {
		title := item.Title
		if item.Unit != "" {
			title = fmt.Sprintf("%s (%s)", title, item.Unit)
		}
		items = append(items, bodyItem{
			Title:    title,
			Quantity: item.Quantity,
			Price:    utils.FormatMoney(item.Price),
			Subtotal: utils.FormatMoney(item.Subtotal()),
		})
	}

	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, bodyData{
		CustomerName:       o.CustomerName,
		OrderNumber:        o.OrderNumber,
		Total:              utils.FormatMoney(o.Total),
		Branch:             o.Branch,
		Region:             o.Region,
		PaymentMethod:      string(o.PaymentMethod),
		Items:              items,
		BankName:           bankName,
		BankAccountName:    bankAccName,
		BankAccountNumber:  bankAccNumber,
		BankBranchCode:     bankBranch,
		ProofOfPaymentNote: proofOfPaymentNote,
		StorefrontURL:      storefrontURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render invoice email body: %w", err)
	}
	return buf.String(), nil
}
