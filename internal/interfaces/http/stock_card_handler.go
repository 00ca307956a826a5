package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/application/usecase"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/pkg/metrics"
)

const cardNotFound = "tarjeta de stock no encontrada"

// StockCardHandler maneja las peticiones HTTP de tarjetas de stock (protegido).
type StockCardHandler struct {
	uc      *usecase.StockCardUseCase
	errors  ErrorMapper
	metrics *metrics.StockMetrics
}

// NewStockCardHandler construye el handler.
func NewStockCardHandler(uc *usecase.StockCardUseCase, errs ErrorMapper, m *metrics.StockMetrics) *StockCardHandler {
	return &StockCardHandler{uc: uc, errors: errs, metrics: m}
}

// Create godoc
// @Summary      Crear tarjeta de stock
// @Tags         stock-cards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockCardRequest  true  "product_name, barcode, unit (ad|mt|lt|kg), status"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-cards [post]
func (h *StockCardHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.StockCardRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return h.errors.respond(c, err, cardNotFound)
	}
	h.metrics.IncCardWrite("create")
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "tarjeta de stock creada", Data: out})
}

// GetByID godoc
// @Summary      Obtener tarjeta de stock
// @Tags         stock-cards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarjeta"
// @Success      200  {object}  dto.StockCardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-cards/{id} [get]
func (h *StockCardHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.Context(), userID, c.Params("id"))
	if err != nil {
		return h.errors.respond(c, err, cardNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tarjetas de stock
// @Tags         stock-cards
// @Security     Bearer
// @Produce      json
// @Param        name     query  string  false  "Subcadena del nombre"
// @Param        barcode  query  string  false  "Subcadena del código de barras"
// @Param        unit     query  string  false  "Unidad"
// @Param        status   query  string  false  "1|0|true|false"
// @Success      200  {object}  dto.StockCardListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-cards [get]
func (h *StockCardHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	f := dto.StockCardFilterRequest{
		Name:    c.Query("name"),
		Barcode: c.Query("barcode"),
		Unit:    c.Query("unit"),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := strconv.ParseBool(raw)
		if err != nil {
			return h.errors.respond(c, domain.NewValidationError("status", "debe ser 1, 0, true o false"), cardNotFound)
		}
		f.Status = &status
	}
	out, err := h.uc.List(c.Context(), userID, f)
	if err != nil {
		return h.errors.respond(c, err, cardNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tarjeta de stock
// @Tags         stock-cards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarjeta"
// @Param        body  body  dto.StockCardRequest  true  "Todos los campos"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-cards/{id} [put]
func (h *StockCardHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.StockCardRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return h.errors.respond(c, err, cardNotFound)
	}
	h.metrics.IncCardWrite("update")
	return c.JSON(dto.MessageResponse{Message: "tarjeta de stock actualizada", Data: out})
}

// Delete godoc
// @Summary      Eliminar tarjeta de stock (y sus movimientos)
// @Tags         stock-cards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarjeta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-cards/{id} [delete]
func (h *StockCardHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return h.errors.respond(c, err, cardNotFound)
	}
	h.metrics.IncCardWrite("delete")
	return c.JSON(dto.MessageResponse{Message: "tarjeta de stock eliminada"})
}
