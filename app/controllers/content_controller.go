package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type ContentController struct {
	svc *services.ContentService
}

func NewContentController(svc *services.ContentService) *ContentController {
	return &ContentController{svc: svc}
}

func (c *ContentController) ListTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := c.svc.ListTrainers(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", trainers)
}

func (c *ContentController) GetTrainer(w http.ResponseWriter, r *http.Request) {
	t, err := c.svc.GetTrainerBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", t)
}

func (c *ContentController) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var in services.TrainerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := c.svc.CreateTrainer(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Trainer created", t)
}

func (c *ContentController) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid trainer id")
		return
	}

	var in services.TrainerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateTrainer(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Trainer updated", nil)
}

func (c *ContentController) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid trainer id")
		return
	}
	if err := c.svc.DeleteTrainer(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Trainer deleted", nil)
}

func (c *ContentController) ListGymClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := c.svc.ListGymClasses(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", classes)
}

func (c *ContentController) GetGymClass(w http.ResponseWriter, r *http.Request) {
	g, err := c.svc.GetGymClassBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", g)
}

func (c *ContentController) CreateGymClass(w http.ResponseWriter, r *http.Request) {
	var in services.GymClassInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	g, err := c.svc.CreateGymClass(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Class created", g)
}

func (c *ContentController) UpdateGymClass(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid class id")
		return
	}

	var in services.GymClassInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateGymClass(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Class updated", nil)
}

func (c *ContentController) DeleteGymClass(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid class id")
		return
	}
	if err := c.svc.DeleteGymClass(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Class deleted", nil)
}

// ActiveTheme is the public endpoint the storefront boots from.
func (c *ContentController) ActiveTheme(w http.ResponseWriter, r *http.Request) {
	t, err := c.svc.ActiveTheme(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", t)
}

func (c *ContentController) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := c.svc.ListThemes(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", themes)
}

func (c *ContentController) CreateTheme(w http.ResponseWriter, r *http.Request) {
	var in services.ThemeInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := c.svc.CreateTheme(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Theme created", t)
}

func (c *ContentController) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid theme id")
		return
	}

	var in services.ThemeInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateTheme(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Theme updated", nil)
}

func (c *ContentController) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid theme id")
		return
	}
	if err := c.svc.DeleteTheme(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Theme deleted", nil)
}

func (c *ContentController) ActivateTheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid theme id")
		return
	}
	if err := c.svc.ActivateTheme(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Theme activated", nil)
}

func (c *ContentController) ListHeroSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := c.svc.ListHeroSlides(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", slides)
}

func (c *ContentController) CreateHeroSlide(w http.ResponseWriter, r *http.Request) {
	var in services.HeroSlideInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	h, err := c.svc.CreateHeroSlide(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Slide created", h)
}

func (c *ContentController) UpdateHeroSlide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid slide id")
		return
	}

	var in services.HeroSlideInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.UpdateHeroSlide(r.Context(), id, in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Slide updated", nil)
}

func (c *ContentController) DeleteHeroSlide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "invalid slide id")
		return
	}
	if err := c.svc.DeleteHeroSlide(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Slide deleted", nil)
}

func (c *ContentController) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := c.svc.GetSettings(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", s)
}

func (c *ContentController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in services.SettingsInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := c.svc.UpdateSettings(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Settings updated", s)
}

func (c *ContentController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in services.SubscribeInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.Subscribe(r.Context(), in); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Subscribed", nil)
}

func (c *ContentController) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := c.svc.ListSubscribers(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", subs)
}

func (c *ContentController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.svc.CreateContact(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Message received", msg)
}

func (c *ContentController) ListContacts(w http.ResponseWriter, r *http.Request) {
	msgs, err := c.svc.ListContacts(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", msgs)
}
