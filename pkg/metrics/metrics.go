// Package metrics expone los contadores Prometheus del motor de inventario.
// La desviación de conciliación es la ruta de alerta de ConsistencyError:
// el agregado materializado nunca debe divergir de los lotes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConsumptionsTotal registros de consumo creados, por método de costeo.
	ConsumptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "consumptions_total",
		Help:      "Registros de consumo creados",
	}, []string{"method"})

	// ReversalsTotal reversiones de consumo aplicadas.
	ReversalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "reversals_total",
		Help:      "Reversiones de consumo aplicadas",
	})

	// LotsReceivedTotal lotes de costo creados por recepciones de compra.
	LotsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "lots_received_total",
		Help:      "Lotes creados por recepción de órdenes de compra",
	})

	// NegativeStockSalesTotal consumos que dejaron stock negativo
	// (política permisiva activada).
	NegativeStockSalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "negative_stock_sales_total",
		Help:      "Consumos aceptados con faltante de lotes",
	})

	// ReconciliationDriftTotal ítems con desviación agregado/lotes detectada.
	// Cualquier incremento aquí es un bug a investigar, no un error de usuario.
	ReconciliationDriftTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "reconciliation_drift_total",
		Help:      "Ítems con desviación entre current_stock y suma de lotes",
	})
)
