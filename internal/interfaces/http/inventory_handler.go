package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
)

// InventoryHandler maneja traslados, producción y consultas de stock/kardex (protegido).
type InventoryHandler struct {
	transferUC   *inventory.TransferUseCase
	productionUC *inventory.ProductionUseCase
	queryUC      *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(transferUC *inventory.TransferUseCase, productionUC *inventory.ProductionUseCase, queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{transferUC: transferUC, productionUC: productionUC, queryUC: queryUC}
}

// CreateTransfer godoc
// @Summary      Registrar traslado entre bodegas
// @Description  Descuenta cada línea en la bodega origen y la suma en destino, todo o
//
//	nada. El total por formato sobre todas las bodegas no cambia.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_warehouse_id, to_warehouse_id, lines"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.transferUC.CreateTransfer(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetTransfer godoc
// @Summary      Detalle de traslado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *InventoryHandler) GetTransfer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	transfer, err := h.transferUC.GetTransfer(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer)
}

// DeleteTransfer godoc
// @Summary      Eliminar traslado (reversa ambas bodegas)
// @Description  Devuelve el stock a la bodega origen y lo resta de destino. Falla con
//
//	409 si destino ya no tiene la cantidad trasladada.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [delete]
func (h *InventoryHandler) DeleteTransfer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if err := h.transferUC.DeleteTransfer(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RunProduction godoc
// @Summary      Ejecutar corrida de producción
// @Description  Consume los insumos de la receta escalados por multiplier en la bodega
//
//	de materia prima y agrega las salidas en la bodega de producto terminado.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunProductionRequest  true  "recipe_id, multiplier"
// @Success      201   {object}  dto.RunProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/runs [post]
func (h *InventoryHandler) RunProduction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RunProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.productionUC.RunProduction(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStock godoc
// @Summary      Stock de un formato en una bodega
// @Description  Celda inexistente equivale a cantidad cero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        format_id     query  string  true  "formato de producto"
// @Param        warehouse_id  query  string  true  "bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	formatID := c.Query("format_id")
	warehouseID := c.Query("warehouse_id")
	if formatID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format_id y warehouse_id son requeridos"})
	}
	stock, err := h.queryUC.GetStock(c.Context(), formatID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// ListStockByWarehouse godoc
// @Summary      Stock de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "bodega"
// @Param        limit   query  int     false  "máx. resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *InventoryHandler) ListStockByWarehouse(c *fiber.Ctx) error {
	warehouseID := c.Params("id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	stock, err := h.queryUC.ListStockByWarehouse(c.Context(), warehouseID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(stock), "stock": stock})
}

// ListMovements godoc
// @Summary      Kardex de movimientos
// @Description  Filtra por bodega (warehouse_id) o por formato (format_id), con rango
//
//	opcional de fechas RFC3339 (from, to). Exactamente uno de los dos filtros.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "bodega (origen o destino)"
// @Param        format_id     query  string  false  "formato de producto"
// @Param        from          query  string  false  "desde (RFC3339)"
// @Param        to            query  string  false  "hasta (RFC3339)"
// @Param        limit         query  int     false  "máx. resultados (default 20)"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	formatID := c.Query("format_id")
	if (warehouseID == "") == (formatID == "") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "indique warehouse_id o format_id (solo uno)"})
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var movements []dto.MovementResponse
	if warehouseID != "" {
		movements, err = h.queryUC.ListMovementsByWarehouse(c.Context(), warehouseID, from, to, page)
	} else {
		movements, err = h.queryUC.ListMovementsByFormat(c.Context(), formatID, from, to, page)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// parseTimeQuery lee un query param RFC3339 opcional; ausencia retorna nil.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
