package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrdersCreated counts orders persisted in pending state.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquapark_orders_created_total",
		Help: "Number of orders created",
	})

	// PaymentNotifications counts processed webhook notifications by mapped status.
	PaymentNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquapark_payment_notifications_total",
		Help: "Number of payment gateway notifications processed",
	}, []string{"status"})

	// TicketValidations counts gate scans by outcome.
	TicketValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquapark_ticket_validations_total",
		Help: "Number of ticket validation attempts",
	}, []string{"result"})
)

// Handler exposes the registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
