// Package export renders PDF receipts for submitted orders. Export runs
// after the order is committed; a failed export is reported to the caller
// but never rolls the order back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/cart"
)

// Receipt holds everything printed on an order receipt.
type Receipt struct {
	OrderID  int64
	PlacedAt time.Time
	Lines    []cart.Line
	Total    decimal.Decimal
}

// PDFExporter writes receipts as PDF files into a fixed directory.
type PDFExporter struct {
	dir string
}

// NewPDFExporter creates an exporter writing into dir, creating it if needed.
func NewPDFExporter(dir string) (*PDFExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create receipts dir")
	}
	return &PDFExporter{dir: dir}, nil
}

// Export renders the receipt and returns the path of the written file.
func (e *PDFExporter) Export(r Receipt) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "CAFE TLU")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Date: "+r.PlacedAt.Format("02/01/2006 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Order: #%d", r.OrderID))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range r.Lines {
		pdf.CellFormat(70, 7, fmt.Sprintf("%s (%s)", line.Name, line.Size), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, line.Price.StringFixed(0)+" VND", "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, line.Subtotal().StringFixed(0)+" VND", "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(170, 8, "TOTAL: "+r.Total.StringFixed(0)+" VND", "T", 1, "R", false, 0, "")

	path := filepath.Join(e.dir, fmt.Sprintf("order_%d.pdf", r.OrderID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", errors.Wrap(err, "write receipt pdf")
	}
	return path, nil
}
