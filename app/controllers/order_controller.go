package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

func (c *OrderController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.svc.ListMine(r.Context(), userID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", orders)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid order id")
		return
	}

	order, err := c.svc.GetForUser(r.Context(), userID, orderID, isAdmin(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", order)
}

// GetByNumber is admin-only lookup by human-readable order number.
func (c *OrderController) GetByNumber(w http.ResponseWriter, r *http.Request) {
	order, err := c.svc.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", order)
}

// List is the admin listing with status filters.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, total, err := c.svc.List(r.Context(), repositories.OrderFilter{
		OrderStatus:   q.Get("orderStatus"),
		PaymentStatus: q.Get("paymentStatus"),
		Page:          parseInt64(q.Get("page")),
		PerPage:       parseInt64(q.Get("perPage")),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

// Transition is the admin status move endpoint.
func (c *OrderController) Transition(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid order id")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required,in=pending,processing,shipped,delivered,cancelled,refunded"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.Transition(r.Context(), orderID, in.Status)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Order status updated", order)
}
