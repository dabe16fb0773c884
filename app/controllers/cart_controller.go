package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type CartController struct {
	svc *services.CartService
}

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{svc: svc}
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	lines, err := c.svc.Get(r.Context(), userID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", lines)
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.AddToCartInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.svc.Add(r.Context(), userID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Added to cart", cart)
}

func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.UpdateCartItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.svc.UpdateItem(r.Context(), userID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Cart updated", cart)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		ProductID string                  `json:"productId" validate:"required,objectid"`
		Variant   *models.VariantSelector `json:"variant"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.svc.Remove(r.Context(), userID, in.ProductID, in.Variant)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Removed from cart", cart)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.svc.Clear(r.Context(), userID); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Cart cleared", nil)
}
