package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type ProductController struct {
	svc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// List is the public catalog listing; only published products unless
// the caller is an admin asking for a specific status.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		Status:  models.ProductPublished,
		Search:  q.Get("search"),
		Page:    parseInt64(q.Get("page")),
		PerPage: parseInt64(q.Get("perPage")),
	}
	if isAdmin(r) {
		filter.Status = q.Get("status")
	}
	if cat := q.Get("category"); cat != "" {
		cid, err := primitive.ObjectIDFromHex(cat)
		if err != nil {
			response.BadRequest(w, "invalid category id")
			return
		}
		filter.Category = cid
	}

	products, total, err := c.svc.List(r.Context(), filter)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", map[string]interface{}{
		"products": products,
		"total":    total,
	})
}

func (c *ProductController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := c.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", p)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.svc.Create(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Product created", p)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid product id")
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.svc.Update(r.Context(), id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Product updated", p)
}

func (c *ProductController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid product id")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required,in=published,draft,out_of_stock"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.SetStatus(r.Context(), id, in.Status); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Status updated", nil)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid product id")
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Product deleted", nil)
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
