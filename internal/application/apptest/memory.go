// Package apptest provee repositorios en memoria y un TxRunner con rollback por
// snapshot para probar los orquestadores de inventario sin PostgreSQL.
package apptest

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
// Las claves de stock son formatID + "|" + warehouseID.
type Store struct {
	mu sync.Mutex
	// txMu serializa transacciones completas, igual que el aislamiento que dan los
	// row locks de PostgreSQL sobre una misma celda.
	txMu sync.Mutex

	Stock         map[string]entity.Stock
	Movements     map[string]entity.Movement
	Purchases     map[string]entity.Purchase
	PurchaseLines map[string][]entity.PurchaseLine
	Sales         map[string]entity.Sale
	SaleLines     map[string][]entity.SaleLine
	Orders        map[string]entity.Order
	OrderLines    map[string][]entity.OrderLine
	Transfers     map[string]entity.Transfer
	TransferLines map[string][]entity.TransferLine
	Recipes       map[string]entity.Recipe
	Formats       map[string]entity.ProductFormat
	Warehouses    map[string]entity.Warehouse
	Suppliers     map[string]entity.Supplier
	Customers     map[string]entity.Customer
	Lots          map[string]entity.Lot
	Users         map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Stock:         map[string]entity.Stock{},
		Movements:     map[string]entity.Movement{},
		Purchases:     map[string]entity.Purchase{},
		PurchaseLines: map[string][]entity.PurchaseLine{},
		Sales:         map[string]entity.Sale{},
		SaleLines:     map[string][]entity.SaleLine{},
		Orders:        map[string]entity.Order{},
		OrderLines:    map[string][]entity.OrderLine{},
		Transfers:     map[string]entity.Transfer{},
		TransferLines: map[string][]entity.TransferLine{},
		Recipes:       map[string]entity.Recipe{},
		Formats:       map[string]entity.ProductFormat{},
		Warehouses:    map[string]entity.Warehouse{},
		Suppliers:     map[string]entity.Supplier{},
		Customers:     map[string]entity.Customer{},
		Lots:          map[string]entity.Lot{},
		Users:         map[string]entity.User{},
	}
}

func stockKey(formatID, warehouseID string) string { return formatID + "|" + warehouseID }

// ── Seeding ───────────────────────────────────────────────────────────────────

// SeedWarehouse registra una bodega.
func (s *Store) SeedWarehouse(id, name string) {
	s.Warehouses[id] = entity.Warehouse{ID: id, Name: name}
}

// SeedFormat registra un formato con precio, costo y tasa de impuesto.
func (s *Store) SeedFormat(id, name string, price, cost, taxRate decimal.Decimal) {
	s.Formats[id] = entity.ProductFormat{ID: id, ProductID: id, SKU: id, Name: name, Price: price, Cost: cost, TaxRate: taxRate}
}

// SeedSupplier registra un proveedor.
func (s *Store) SeedSupplier(id, name string) {
	s.Suppliers[id] = entity.Supplier{ID: id, Name: name}
}

// SeedCustomer registra un cliente.
func (s *Store) SeedCustomer(id, name string) {
	s.Customers[id] = entity.Customer{ID: id, Name: name}
}

// SeedLot registra un lote con su costo unitario.
func (s *Store) SeedLot(id, formatID string, unitCost decimal.Decimal) {
	s.Lots[id] = entity.Lot{ID: id, FormatID: formatID, UnitCost: unitCost, ReceivedAt: time.Now()}
}

// SeedRecipe registra una receta completa.
func (s *Store) SeedRecipe(r entity.Recipe) {
	s.Recipes[r.ID] = r
}

// SeedStock fija la cantidad de una celda directamente.
func (s *Store) SeedStock(formatID, warehouseID string, qty decimal.Decimal) {
	s.Stock[stockKey(formatID, warehouseID)] = entity.Stock{
		FormatID: formatID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now(),
	}
}

// StockQty devuelve la cantidad actual de una celda (cero si no existe).
func (s *Store) StockQty(formatID, warehouseID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cell, ok := s.Stock[stockKey(formatID, warehouseID)]; ok {
		return cell.Quantity
	}
	return decimal.Zero
}

// TotalByFormat suma la cantidad del formato sobre todas las bodegas.
func (s *Store) TotalByFormat(formatID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, cell := range s.Stock {
		if cell.FormatID == formatID {
			total = total.Add(cell.Quantity)
		}
	}
	return total
}

// MovementsByDocument devuelve los movimientos ligados a un documento.
func (s *Store) MovementsByDocument(documentID string) []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []entity.Movement
	for _, m := range s.Movements {
		if m.DocumentID != nil && *m.DocumentID == documentID {
			result = append(result, m)
		}
	}
	return result
}

// Repos devuelve el juego de repositorios sobre este store.
func (s *Store) Repos() inventory.Repos {
	return inventory.Repos{
		Stock:    &stockRepo{s},
		Movement: &movementRepo{s},
		Purchase: &purchaseRepo{s},
		Sale:     &saleRepo{s},
		Order:    &orderRepo{s},
		Transfer: &transferRepo{s},
		Recipe:   &recipeRepo{s},
		Lot:      &lotRepo{s},
		Format:   &formatRepo{s},
	}
}

// WarehouseRepo repositorio de bodegas para validaciones fuera de transacción.
func (s *Store) WarehouseRepo() *WarehouseRepo { return &WarehouseRepo{s} }

// SupplierRepo repositorio de proveedores.
func (s *Store) SupplierRepo() *SupplierRepo { return &SupplierRepo{s} }

// CustomerRepo repositorio de clientes.
func (s *Store) CustomerRepo() *CustomerRepo { return &CustomerRepo{s} }

// FormatRepo repositorio de formatos.
func (s *Store) FormatRepo() *formatRepo { return &formatRepo{s} }

// RecipeRepo repositorio de recetas.
func (s *Store) RecipeRepo() *recipeRepo { return &recipeRepo{s} }

// TransferRepo repositorio de traslados.
func (s *Store) TransferRepo() *transferRepo { return &transferRepo{s} }

// PurchaseRepo repositorio de compras.
func (s *Store) PurchaseRepo() *purchaseRepo { return &purchaseRepo{s} }

// SaleRepo repositorio de ventas.
func (s *Store) SaleRepo() *saleRepo { return &saleRepo{s} }

// OrderRepo repositorio de pedidos.
func (s *Store) OrderRepo() *orderRepo { return &orderRepo{s} }

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner implementa inventory.TxRunner sobre el store: toma un snapshot del
// estado, ejecuta fn y lo restaura si fn falla. txMu serializa las transacciones.
type TxRunner struct {
	store *Store
}

// TxRunner devuelve el runner transaccional del store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{store: s} }

func (t *TxRunner) Run(_ context.Context, fn func(r inventory.Repos) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(t.store.Repos()); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	stock         map[string]entity.Stock
	movements     map[string]entity.Movement
	purchases     map[string]entity.Purchase
	purchaseLines map[string][]entity.PurchaseLine
	sales         map[string]entity.Sale
	saleLines     map[string][]entity.SaleLine
	orders        map[string]entity.Order
	orderLines    map[string][]entity.OrderLine
	transfers     map[string]entity.Transfer
	transferLines map[string][]entity.TransferLine
	formats       map[string]entity.ProductFormat
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storeSnapshot{
		stock:         copyMap(s.Stock),
		movements:     copyMap(s.Movements),
		purchases:     copyMap(s.Purchases),
		purchaseLines: copyMap(s.PurchaseLines),
		sales:         copyMap(s.Sales),
		saleLines:     copyMap(s.SaleLines),
		orders:        copyMap(s.Orders),
		orderLines:    copyMap(s.OrderLines),
		transfers:     copyMap(s.Transfers),
		transferLines: copyMap(s.TransferLines),
		formats:       copyMap(s.Formats),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stock = snap.stock
	s.Movements = snap.movements
	s.Purchases = snap.purchases
	s.PurchaseLines = snap.purchaseLines
	s.Sales = snap.sales
	s.SaleLines = snap.saleLines
	s.Orders = snap.orders
	s.OrderLines = snap.orderLines
	s.Transfers = snap.transfers
	s.TransferLines = snap.transferLines
	s.Formats = snap.formats
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(formatID, warehouseID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cell, ok := r.s.Stock[stockKey(formatID, warehouseID)]; ok {
		c := cell
		return &c, nil
	}
	return &entity.Stock{FormatID: formatID, WarehouseID: warehouseID, Quantity: decimal.Zero, UpdatedAt: time.Now()}, nil
}

func (r *stockRepo) ApplyDelta(formatID, warehouseID string, delta decimal.Decimal) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := stockKey(formatID, warehouseID)
	cell, ok := r.s.Stock[key]
	if !ok {
		cell = entity.Stock{FormatID: formatID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	}
	next := cell.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, domain.NewInsufficientStockError(formatID, warehouseID)
	}
	cell.Quantity = next
	cell.UpdatedAt = time.Now()
	r.s.Stock[key] = cell
	c := cell
	return &c, nil
}

func (r *stockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Stock
	for _, cell := range r.s.Stock {
		if cell.WarehouseID == warehouseID {
			c := cell
			result = append(result, &c)
		}
	}
	return paginate(result, limit, offset), nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Movements[m.ID] = *m
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.Movements[id]; ok {
		c := m
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *movementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Movement
	for _, m := range r.s.Movements {
		participates := (m.SourceWarehouseID != nil && *m.SourceWarehouseID == warehouseID) ||
			(m.DestWarehouseID != nil && *m.DestWarehouseID == warehouseID)
		if participates && inRange(m.OccurredAt, from, to) {
			c := m
			result = append(result, &c)
		}
	}
	return paginate(result, limit, offset), nil
}

func (r *movementRepo) ListByFormat(formatID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Movement
	for _, m := range r.s.Movements {
		if !inRange(m.OccurredAt, from, to) {
			continue
		}
		for _, l := range m.Lines {
			if l.FormatID == formatID {
				c := m
				result = append(result, &c)
				break
			}
		}
	}
	return paginate(result, limit, offset), nil
}

func (r *movementRepo) DeleteByDocument(documentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, m := range r.s.Movements {
		if m.DocumentID != nil && *m.DocumentID == documentID {
			delete(r.s.Movements, id)
		}
	}
	return nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Compras ───────────────────────────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Purchases[p.ID] = *p
	return nil
}

func (r *purchaseRepo) CreateLine(l *entity.PurchaseLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.PurchaseLines[l.PurchaseID] = append(r.s.PurchaseLines[l.PurchaseID], *l)
	return nil
}

func (r *purchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Purchases[id]; ok {
		c := p
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *purchaseRepo) ListLines(purchaseID string) ([]*entity.PurchaseLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.PurchaseLines[purchaseID]
	result := make([]*entity.PurchaseLine, 0, len(lines))
	for i := range lines {
		c := lines[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *purchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Purchase
	for _, p := range r.s.Purchases {
		c := p
		result = append(result, &c)
	}
	return paginate(result, limit, offset), nil
}

func (r *purchaseRepo) DeleteLines(purchaseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.PurchaseLines, purchaseID)
	return nil
}

func (r *purchaseRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Purchases[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Purchases, id)
	return nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) CreateLine(l *entity.SaleLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.SaleLines[l.SaleID] = append(r.s.SaleLines[l.SaleID], *l)
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale, ok := r.s.Sales[id]; ok {
		c := sale
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *saleRepo) GetByConvertedFromOrder(orderID string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.Sales {
		if sale.ConvertedFromOrderID != nil && *sale.ConvertedFromOrderID == orderID {
			c := sale
			return &c, nil
		}
	}
	return nil, nil
}

func (r *saleRepo) ListLines(saleID string) ([]*entity.SaleLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.SaleLines[saleID]
	result := make([]*entity.SaleLine, 0, len(lines))
	for i := range lines {
		c := lines[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Sale
	for _, sale := range r.s.Sales {
		c := sale
		result = append(result, &c)
	}
	return paginate(result, limit, offset), nil
}

func (r *saleRepo) DeleteLines(saleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.SaleLines, saleID)
	return nil
}

func (r *saleRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Sales, id)
	return nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Orders[o.ID] = *o
	return nil
}

func (r *orderRepo) CreateLine(l *entity.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.OrderLines[l.OrderID] = append(r.s.OrderLines[l.OrderID], *l)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.Orders[id]; ok {
		c := o
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *orderRepo) ListLines(orderID string) ([]*entity.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.OrderLines[orderID]
	result := make([]*entity.OrderLine, 0, len(lines))
	for i := range lines {
		c := lines[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *orderRepo) List(limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Order
	for _, o := range r.s.Orders {
		c := o
		result = append(result, &c)
	}
	return paginate(result, limit, offset), nil
}

func (r *orderRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.Orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.Orders[id] = o
	return nil
}

func (r *orderRepo) DeleteLines(orderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.OrderLines, orderID)
	return nil
}

func (r *orderRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Orders, id)
	return nil
}

// ── Traslados ─────────────────────────────────────────────────────────────────

type transferRepo struct{ s *Store }

func (r *transferRepo) Create(t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Transfers[t.ID] = *t
	return nil
}

func (r *transferRepo) CreateLine(l *entity.TransferLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.TransferLines[l.TransferID] = append(r.s.TransferLines[l.TransferID], *l)
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.Transfers[id]; ok {
		c := t
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *transferRepo) ListLines(transferID string) ([]*entity.TransferLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.TransferLines[transferID]
	result := make([]*entity.TransferLine, 0, len(lines))
	for i := range lines {
		c := lines[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *transferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*entity.Transfer
	for _, t := range r.s.Transfers {
		c := t
		result = append(result, &c)
	}
	return paginate(result, limit, offset), nil
}

func (r *transferRepo) DeleteLines(transferID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.TransferLines, transferID)
	return nil
}

func (r *transferRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Transfers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Transfers, id)
	return nil
}

// ── Recetas y catálogo ────────────────────────────────────────────────────────

type recipeRepo struct{ s *Store }

func (r *recipeRepo) GetByID(id string) (*entity.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.Recipes[id]; ok {
		c := rec
		return &c, nil
	}
	return nil, nil
}

type formatRepo struct{ s *Store }

func (r *formatRepo) GetByID(id string) (*entity.ProductFormat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.Formats[id]; ok {
		c := f
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *formatRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.Formats[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.Cost = cost
	f.UpdatedAt = time.Now()
	r.s.Formats[id] = f
	return nil
}

type lotRepo struct{ s *Store }

func (r *lotRepo) GetByID(id string) (*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.Lots[id]; ok {
		c := l
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// WarehouseRepo repositorio de bodegas en memoria.
type WarehouseRepo struct{ s *Store }

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.Warehouses[id]; ok {
		c := w
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// SupplierRepo repositorio de proveedores en memoria.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sup, ok := r.s.Suppliers[id]; ok {
		c := sup
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// CustomerRepo repositorio de clientes en memoria.
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cus, ok := r.s.Customers[id]; ok {
		c := cus
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ s *Store }

// UserRepo devuelve el repositorio de usuarios del store.
func (s *Store) UserRepo() *UserRepo { return &UserRepo{s} }

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.Users[id]; ok {
		c := u
		return &c, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}
