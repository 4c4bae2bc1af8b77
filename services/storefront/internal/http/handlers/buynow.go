package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/services/storefront/internal/service"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, who service.Identity, in service.PlaceOrderInput) (string, error)
}

type BuyNowHandler struct {
	Orders   OrderPlacer
	Sessions Sessions
	Log      zerolog.Logger
}

type buyNowResp struct {
	OrderID string `json:"order_id"`
}

var orderFields = []string{"name", "phone", "address", "total"}

// ServeHTTP godoc
// @Summary      Place an order
// @Tags         orders
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name     formData  string  true  "Recipient name"
// @Param        phone    formData  string  true  "Exactly 10 digits"
// @Param        address  formData  string  true  "Delivery address"
// @Param        total    formData  string  true  "Order total, stored verbatim"
// @Success      200  {object}  buyNowResp
// @Failure      303
// @Failure      400
// @Router       /buynow [post]
func (h *BuyNowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := h.Sessions.Load(r)
	who := service.Identity{Email: sess.Email}

	if who.Authenticated() {
		for _, f := range orderFields {
			if _, ok := r.PostForm[f]; !ok {
				http.Error(w, "missing field: "+f, http.StatusBadRequest)
				return
			}
		}
	}

	orderID, err := h.Orders.PlaceOrder(r.Context(), who, service.PlaceOrderInput{
		Name:    r.PostForm.Get("name"),
		Phone:   r.PostForm.Get("phone"),
		Address: r.PostForm.Get("address"),
		Total:   r.PostForm.Get("total"),
	})
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashError, "Please login to place an order.", "/login")
		return
	case errors.Is(err, service.ErrInvalidPhone):
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashError, "Invalid phone number.", "/buynow")
		return
	case err != nil:
		h.Log.Error().Err(err).Str("email", who.Email).Msg("place order failed")
		http.Error(w, "failed to place order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, buyNowResp{OrderID: orderID})
}
