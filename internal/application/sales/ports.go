package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// SaleLineForPDF línea de venta ya resuelta (nombre de formato incluido) para la
// representación gráfica.
type SaleLineForPDF struct {
	FormatName string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}

// SalePDFGenerator puerto del generador de PDF del documento de venta.
type SalePDFGenerator interface {
	GenerateSalePDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []SaleLineForPDF) ([]byte, error)
}
