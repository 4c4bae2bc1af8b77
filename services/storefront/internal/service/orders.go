package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopfront/shared/pkg/metrics"
	"shopfront/shared/pkg/models"
	"shopfront/shared/pkg/notify"
)

const ConfirmationSubject = "Order Confirmation"

type OrderStore interface {
	Append(ctx context.Context, o models.Order) error
}

// Identity is the session marker handed in by the HTTP layer. The zero value
// means nobody is logged in.
type Identity struct {
	Email string
}

func (i Identity) Authenticated() bool { return i.Email != "" }

type PlaceOrderInput struct {
	Name    string
	Phone   string
	Address string
	Total   string
}

type OrdersService struct {
	Repo     OrderStore
	Notifier notify.Notifier
	Reporter ErrorReporter
	Log      zerolog.Logger

	// StrictPersist turns a failed append into ErrStorage. When false the
	// failure is reported and the order id is still returned.
	StrictPersist bool

	NewID func() string
}

// PlaceOrder runs authorize → validate → persist → notify once, without retries.
// Notification never affects the result.
func (s *OrdersService) PlaceOrder(ctx context.Context, who Identity, in PlaceOrderInput) (string, error) {
	if !who.Authenticated() {
		metrics.OrdersRejectedTotal.WithLabelValues("unauthenticated").Inc()
		return "", ErrUnauthenticated
	}
	if !ValidPhone(in.Phone) {
		metrics.OrdersRejectedTotal.WithLabelValues("invalid_phone").Inc()
		return "", ErrInvalidPhone
	}

	order := models.Order{
		OrderID: s.newID(),
		Email:   who.Email,
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
		Total:   in.Total,
	}

	if err := s.Repo.Append(ctx, order); err != nil {
		err = fmt.Errorf("%w: %w", ErrStorage, err)
		if s.StrictPersist {
			return "", err
		}
		s.reporter().Report(ctx, "orders.append", err, map[string]string{
			"order_id": order.OrderID,
			"email":    order.Email,
		})
		metrics.OrdersPlacedTotal.Inc()
		return order.OrderID, nil
	}

	s.notify(ctx, order)

	metrics.OrdersPlacedTotal.Inc()
	s.Log.Info().Str("order_id", order.OrderID).Str("email", order.Email).Msg("order placed")
	return order.OrderID, nil
}

func (s *OrdersService) notify(ctx context.Context, o models.Order) {
	out, err := s.Notifier.Notify(ctx, ConfirmationSubject, ConfirmationMessage(o))
	metrics.NotificationsTotal.WithLabelValues(string(out)).Inc()

	switch out {
	case notify.Failed:
		s.reporter().Report(ctx, "orders.notify", err, map[string]string{"order_id": o.OrderID})
	case notify.Skipped:
		s.Log.Info().Str("order_id", o.OrderID).Msg("order confirmation skipped")
	default:
		s.Log.Debug().Str("order_id", o.OrderID).Str("outcome", string(out)).Msg("order confirmation sent")
	}
}

func (s *OrdersService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *OrdersService) reporter() ErrorReporter {
	if s.Reporter != nil {
		return s.Reporter
	}
	return &LogReporter{Log: s.Log}
}

func ConfirmationMessage(o models.Order) string {
	return fmt.Sprintf("Hi %s, your order %s is confirmed. Total ₹%s.", o.Name, o.OrderID, o.Total)
}

// ValidPhone accepts exactly ten ASCII digits.
func ValidPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}
