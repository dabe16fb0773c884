package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.svc.Register(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Account created", pair)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.svc.Login(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Logged in", pair)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.svc.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Token refreshed", pair)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.svc.Me(r.Context(), userID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", user)
}
