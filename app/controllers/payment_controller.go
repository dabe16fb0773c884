package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/bind"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

// Stripe webhook payloads are small; 64KB of headroom is plenty.
const maxWebhookBody = 64 << 10

type PaymentController struct {
	svc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

func (c *PaymentController) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.svc.CreateCheckoutSession(r.Context(), userID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, "Checkout session created", result)
}

// Webhook receives raw provider deliveries. The body must reach the
// signature check unmodified, so no JSON binding here. Non-signature
// failures return 500 so the provider retries the delivery.
func (c *PaymentController) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "unreadable payload")
		return
	}

	err = c.svc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, services.ErrBadSignature) {
			response.BadRequest(w, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("webhook processing failed", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, "", nil)
}
