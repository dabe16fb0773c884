package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type WishlistController struct {
	svc *services.WishlistService
}

func NewWishlistController(svc *services.WishlistService) *WishlistController {
	return &WishlistController{svc: svc}
}

func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	lines, err := c.svc.List(r.Context(), userID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", lines)
}

func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		ProductID string `json:"productId" validate:"required,objectid"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.Add(r.Context(), userID, in.ProductID); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Added to wishlist", nil)
}

func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.svc.Remove(r.Context(), userID, chi.URLParam(r, "productId")); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Removed from wishlist", nil)
}
