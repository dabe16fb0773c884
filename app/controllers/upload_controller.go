package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type UploadController struct {
	svc *services.UploadService
}

func NewUploadController(svc *services.UploadService) *UploadController {
	return &UploadController{svc: svc}
}

// Image accepts a single "file" field and stores it under the "dir"
// form value (default "uploads").
func (c *UploadController) Image(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxMemoryBuffer); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	_, fh, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, services.ErrNoFile.Error())
		return
	}

	dir := r.FormValue("dir")
	if dir == "" {
		dir = "uploads"
	}

	result, err := c.svc.UploadOne(fh, dir)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "File uploaded", result)
}

// Banners accepts a multi-file "banners" field for one product color
// and uploads the set concurrently.
func (c *UploadController) Banners(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxMemoryBuffer); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["banners"]
	dir := r.FormValue("dir")
	if dir == "" {
		dir = "products/banners"
	}

	results, err := c.svc.UploadBanners(files, dir)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Banners uploaded", results)
}
