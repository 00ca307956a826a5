package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics contadores de negocio: escrituras sobre tarjetas y movimientos, exportaciones.
type StockMetrics struct {
	cardWrites     *prometheus.CounterVec
	movementWrites *prometheus.CounterVec
	exports        *prometheus.CounterVec
}

// NewStockMetrics registra los contadores de negocio en reg.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	cardWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_card_writes_total",
		Help: "Successful stock card writes by operation.",
	}, []string{"op"})
	movementWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movement_writes_total",
		Help: "Successful stock movement writes by operation and movement type.",
	}, []string{"op", "type"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "real_time_exports_total",
		Help: "Real time stock report exports by format.",
	}, []string{"format"})
	reg.MustRegister(cardWrites, movementWrites, exports)
	return &StockMetrics{cardWrites: cardWrites, movementWrites: movementWrites, exports: exports}
}

// IncCardWrite cuenta una escritura de tarjeta (create, update, delete).
func (m *StockMetrics) IncCardWrite(op string) {
	if m == nil || m.cardWrites == nil {
		return
	}
	m.cardWrites.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncMovementWrite cuenta una escritura de movimiento; movementType vacío en delete.
func (m *StockMetrics) IncMovementWrite(op, movementType string) {
	if m == nil || m.movementWrites == nil {
		return
	}
	m.movementWrites.WithLabelValues(normalizeLabel(op), normalizeLabel(movementType)).Inc()
}

// IncExport cuenta una exportación del reporte (xlsx, pdf).
func (m *StockMetrics) IncExport(format string) {
	if m == nil || m.exports == nil {
		return
	}
	m.exports.WithLabelValues(normalizeLabel(format)).Inc()
}
