package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/pkg/metrics"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// RealTimeHandler expone el reporte de stock en tiempo real y sus exportaciones (protegido).
type RealTimeHandler struct {
	uc      *analytics.RealTimeStockUseCase
	errors  ErrorMapper
	metrics *metrics.StockMetrics
}

// NewRealTimeHandler construye el handler.
func NewRealTimeHandler(uc *analytics.RealTimeStockUseCase, errs ErrorMapper, m *metrics.StockMetrics) *RealTimeHandler {
	return &RealTimeHandler{uc: uc, errors: errs, metrics: m}
}

// List godoc
// @Summary      Stock en tiempo real
// @Description  Una fila por tarjeta activa: entradas, salidas y existencia actual. Se recalcula en cada consulta.
// @Tags         real-time
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RealTimeStockListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/real-time [get]
func (h *RealTimeHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Compute(c.Context(), userID)
	if err != nil {
		return h.errors.respond(c, err, "")
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar stock en tiempo real (Excel)
// @Tags         real-time
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/real-time/export.xlsx [get]
func (h *RealTimeHandler) ExportXLSX(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	data, err := h.uc.ExportXLSX(c.Context(), userID)
	if err != nil {
		return h.errors.respond(c, err, "")
	}
	h.metrics.IncExport("xlsx")
	return sendAttachment(c, mimeXLSX, "stock-en-tiempo-real.xlsx", data)
}

// ExportPDF godoc
// @Summary      Exportar stock en tiempo real (PDF con códigos de barras)
// @Tags         real-time
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/real-time/export.pdf [get]
func (h *RealTimeHandler) ExportPDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	data, err := h.uc.ExportPDF(c.Context(), userID)
	if err != nil {
		return h.errors.respond(c, err, "")
	}
	h.metrics.IncExport("pdf")
	return sendAttachment(c, mimePDF, "stock-en-tiempo-real.pdf", data)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Attachment(filename)
	return c.Send(data)
}
