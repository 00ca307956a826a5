package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/application/inventory"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/pkg/metrics"
)

const movementNotFound = "movimiento o tarjeta de stock no encontrado"

// StockMovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type StockMovementHandler struct {
	uc      *inventory.MovementUseCase
	errors  ErrorMapper
	metrics *metrics.StockMetrics
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(uc *inventory.MovementUseCase, errs ErrorMapper, m *metrics.StockMetrics) *StockMovementHandler {
	return &StockMovementHandler{uc: uc, errors: errs, metrics: m}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "stock_card_id, movement_type (in|out), movement_amount, movement_price, total_price (opcional), movement_date, company"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return h.errors.respond(c, err, movementNotFound)
	}
	h.metrics.IncMovementWrite("create", out.MovementType)
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "movimiento registrado", Data: out})
}

// GetByID godoc
// @Summary      Obtener movimiento de stock
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *StockMovementHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.Context(), userID, c.Params("id"))
	if err != nil {
		return h.errors.respond(c, err, movementNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos de stock
// @Description  Solo incluye movimientos de tarjetas activas del usuario.
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        product_name  query  string  false  "Subcadena del nombre de la tarjeta"
// @Param        type          query  string  false  "in|out"
// @Param        unit          query  string  false  "ad|mt|lt|kg"
// @Param        from          query  string  false  "Fecha desde (YYYY-MM-DD o RFC3339)"
// @Param        to            query  string  false  "Fecha hasta (YYYY-MM-DD o RFC3339); una fecha sin hora incluye el día completo"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	f := dto.MovementFilterRequest{
		ProductName: c.Query("product_name"),
		Type:        c.Query("type"),
		Unit:        c.Query("unit"),
	}
	fields := map[string]string{}
	if from, ok, err := queryDate(c, "from", false); err != nil {
		fields["from"] = "fecha inválida"
	} else if ok {
		f.From = &from
	}
	if to, ok, err := queryDate(c, "to", true); err != nil {
		fields["to"] = "fecha inválida"
	} else if ok {
		f.To = &to
	}
	if len(fields) > 0 {
		return h.errors.respond(c, &domain.ValidationError{Fields: fields}, movementNotFound)
	}
	out, err := h.uc.List(c.Context(), userID, f)
	if err != nil {
		return h.errors.respond(c, err, movementNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento de stock
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.StockMovementRequest  true  "Todos los campos"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [put]
func (h *StockMovementHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return h.errors.respond(c, err, movementNotFound)
	}
	h.metrics.IncMovementWrite("update", out.MovementType)
	return c.JSON(dto.MessageResponse{Message: "movimiento actualizado", Data: out})
}

// Delete godoc
// @Summary      Eliminar movimiento de stock
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [delete]
func (h *StockMovementHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return h.errors.respond(c, err, movementNotFound)
	}
	h.metrics.IncMovementWrite("delete", "")
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}

// queryDate lee un parámetro de fecha. Con endOfDay, una fecha sin hora se extiende al final del día.
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (time.Time, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, false, err
	}
	if endOfDay && len(raw) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Microsecond)
	}
	return t.UTC(), true, nil
}
