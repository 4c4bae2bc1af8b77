package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_placed_total",
		Help: "Total orders returned to customers as placed",
	})
	OrdersRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_orders_rejected_total",
		Help: "Total order placements rejected before persisting",
	}, []string{"reason"})
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_notifications_total",
		Help: "Notification dispatch attempts by outcome",
	}, []string{"outcome"})
	SwallowedErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_swallowed_errors_total",
		Help: "Errors logged and not surfaced to the caller",
	}, []string{"op"})
	RelayedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_notifications_relayed_total",
		Help: "Relay messages handled by the notification worker",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(OrdersPlacedTotal, OrdersRejectedTotal, NotificationsTotal, SwallowedErrorsTotal, RelayedTotal)
}
