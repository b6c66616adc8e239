package sales

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una venta.
type PDFUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	formatRepo   repository.ProductFormatRepository
	generator    SalePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository, formatRepo repository.ProductFormatRepository, generator SalePDFGenerator) *PDFUseCase {
	return &PDFUseCase{saleRepo: saleRepo, customerRepo: customerRepo, formatRepo: formatRepo, generator: generator}
}

// GenerateSaleDocument resuelve venta, cliente y nombres de formato y delega en el
// generador. Devuelve los bytes del PDF.
func (uc *PDFUseCase) GenerateSaleDocument(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.ListLines(saleID)
	if err != nil {
		return nil, err
	}
	pdfLines := make([]SaleLineForPDF, 0, len(lines))
	for _, l := range lines {
		name := l.FormatID
		if format, err := uc.formatRepo.GetByID(l.FormatID); err == nil && format != nil {
			name = format.Name
		}
		pdfLines = append(pdfLines, SaleLineForPDF{
			FormatName: name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Subtotal:   l.Quantity.Mul(l.UnitPrice),
		})
	}
	return uc.generator.GenerateSalePDF(ctx, sale, customer, pdfLines)
}
