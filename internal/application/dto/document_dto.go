package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest línea de un documento comercial (compra, venta, pedido).
// WarehouseID indica la bodega donde la línea afecta el stock.
type DocumentLineRequest struct {
	FormatID    string          `json:"format_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LotID       string          `json:"lot_id,omitempty"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Note       string                `json:"note,omitempty"`
	Lines      []DocumentLineRequest `json:"lines"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID string                `json:"customer_id"`
	Note       string                `json:"note,omitempty"`
	Lines      []DocumentLineRequest `json:"lines"`
}

// CreateOrderRequest body para POST /api/orders. El pedido descuenta stock al
// crearse (reserva), igual que una venta.
type CreateOrderRequest struct {
	CustomerID string                `json:"customer_id"`
	Note       string                `json:"note,omitempty"`
	Lines      []DocumentLineRequest `json:"lines"`
}

// DocumentLineResponse línea de documento en respuestas.
type DocumentLineResponse struct {
	ID          string          `json:"id"`
	FormatID    string          `json:"format_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LotID       string          `json:"lot_id,omitempty"`
}

// PurchaseResponse compra con detalle para GET /api/purchases/:id.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"supplier_id"`
	Date       string                 `json:"date"`
	NetTotal   decimal.Decimal        `json:"net_total"`
	TaxTotal   decimal.Decimal        `json:"tax_total"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
	Note       string                 `json:"note,omitempty"`
	Lines      []DocumentLineResponse `json:"lines"`
}

// SaleResponse venta con detalle para GET /api/sales/:id.
type SaleResponse struct {
	ID                   string                 `json:"id"`
	CustomerID           string                 `json:"customer_id"`
	Date                 string                 `json:"date"`
	NetTotal             decimal.Decimal        `json:"net_total"`
	TaxTotal             decimal.Decimal        `json:"tax_total"`
	GrandTotal           decimal.Decimal        `json:"grand_total"`
	Note                 string                 `json:"note,omitempty"`
	Status               string                 `json:"status"`
	ConvertedFromOrderID string                 `json:"converted_from_order_id,omitempty"`
	Lines                []DocumentLineResponse `json:"lines"`
}

// OrderResponse pedido con detalle para GET /api/orders/:id.
type OrderResponse struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Date       string                 `json:"date"`
	NetTotal   decimal.Decimal        `json:"net_total"`
	TaxTotal   decimal.Decimal        `json:"tax_total"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
	Note       string                 `json:"note,omitempty"`
	Status     string                 `json:"status"`
	Lines      []DocumentLineResponse `json:"lines"`
}
