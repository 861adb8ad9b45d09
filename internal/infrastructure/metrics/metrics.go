package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics observabilidad del registro de clientes y de la bitácora.
type Metrics struct {
	registry *prometheus.Registry

	Customers     prometheus.Gauge
	Operations    *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	AuditFailures prometheus.Counter
}

// New registra las métricas en un registro propio (evita colisiones entre tests).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Customers: f.NewGauge(prometheus.GaugeOpts{
			Name: "registro_clientes_total",
			Help: "Cantidad de clientes presentes en el registro",
		}),
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_operaciones_total",
			Help: "Operaciones exitosas sobre el registro por tipo",
		}, []string{"kind"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_rechazos_total",
			Help: "Operaciones rechazadas por código de error de dominio",
		}, []string{"code"}),
		AuditFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "bitacora_fallos_escritura_total",
			Help: "Entradas de bitácora que no pudieron persistirse",
		}),
	}
}

// SetCustomers fija el tamaño actual del registro.
func (m *Metrics) SetCustomers(n int) {
	m.Customers.Set(float64(n))
}

// IncOperation cuenta una operación exitosa (ADD, REMOVE, LOOKUP, CLEAR).
func (m *Metrics) IncOperation(kind string) {
	m.Operations.WithLabelValues(kind).Inc()
}

// IncRejection cuenta una operación rechazada.
func (m *Metrics) IncRejection(code string) {
	m.Rejections.WithLabelValues(code).Inc()
}

// IncAuditFailure cuenta un fallo de escritura en la bitácora.
func (m *Metrics) IncAuditFailure() {
	m.AuditFailures.Inc()
}

// Handler expone las métricas en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
