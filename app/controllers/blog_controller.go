package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type BlogController struct {
	svc *services.BlogService
}

func NewBlogController(svc *services.BlogService) *BlogController {
	return &BlogController{svc: svc}
}

// List returns published articles publicly, everything for admins.
func (c *BlogController) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := c.svc.ListBlogs(r.Context(), !isAdmin(r), r.URL.Query().Get("category"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", blogs)
}

func (c *BlogController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	b, err := c.svc.GetBlogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", b)
}

func (c *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BlogInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := c.svc.CreateBlog(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Blog created", b)
}

func (c *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid blog id")
		return
	}

	var in services.BlogInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateBlog(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Blog updated", nil)
}

func (c *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid blog id")
		return
	}
	if err := c.svc.DeleteBlog(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Blog deleted", nil)
}

func (c *BlogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.svc.ListCategories(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", cats)
}

func (c *BlogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.BlogCategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.svc.CreateCategory(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Category created", cat)
}

func (c *BlogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid category id")
		return
	}

	var in services.BlogCategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateCategory(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Category updated", nil)
}

func (c *BlogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid category id")
		return
	}
	if err := c.svc.DeleteCategory(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Category deleted", nil)
}

func (c *BlogController) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := c.svc.ListAuthors(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", authors)
}

func (c *BlogController) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in services.AuthorInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := c.svc.CreateAuthor(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Author created", a)
}

func (c *BlogController) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid author id")
		return
	}

	var in services.AuthorInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateAuthor(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Author updated", nil)
}

func (c *BlogController) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid author id")
		return
	}
	if err := c.svc.DeleteAuthor(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Author deleted", nil)
}
