package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
)

// Render produces a PDF invoice for an order. Line items reference the
// product snapshot when the product still exists; deleted products fall
// back to their id.
func Render(order *model.Order, customer *model.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(40, 10, "INVOICE")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %d", order.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04:05")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(7)
	if customer != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Customer Email: %s", customer.Email))
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(90, 8, "Item")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(35, 8, "Price")
	pdf.Cell(35, 8, "Total")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range order.Items {
		name := fmt.Sprintf("Product #%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		pdf.Cell(90, 8, name)
		pdf.Cell(25, 8, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(35, 8, fmt.Sprintf("$%.2f", item.Price))
		pdf.Cell(35, 8, fmt.Sprintf("$%.2f", item.Price*float64(item.Quantity)))
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(115, 8, "")
	pdf.Cell(35, 8, "Total Amount:")
	pdf.Cell(35, 8, fmt.Sprintf("$%.2f", order.TotalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
