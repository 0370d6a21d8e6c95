package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ajo-zero/backend/internal/httputil"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/paystack"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// eventRetention is how long processed webhook events are remembered for
// answering redeliveries without touching the database.
const eventRetention = 24 * time.Hour

// webhookEvent is the envelope of a Paystack webhook delivery.
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// RegisterWebhookRoutes registers the routes for payment provider
// webhooks with the RouterGroup that is passed.
func (co Controller) RegisterWebhookRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/paystack", co.OptionsWebhook)
	r.POST("/paystack", co.PaystackWebhook)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Webhooks
// @Success		204
// @Router			/v1/webhooks/paystack [options]
func (co Controller) OptionsWebhook(c *gin.Context) {
	httputil.OptionsPost(c)
}

// PaystackWebhook reconciles the ledger with charge events sent by
// Paystack.
//
// The signature is verified against the raw request body before anything
// is parsed. Events that were already processed are acknowledged without
// touching the database, as are events the backend does not act on.
//
// @Summary		Paystack webhook
// @Description	Receives charge events from Paystack and settles the matching pending transactions
// @Tags			Webhooks
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/webhooks/paystack [post]
func (co Controller) PaystackWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidBody.Error(),
		})
		return
	}

	if !co.Gateway.ValidSignature(body, c.GetHeader(paystack.SignatureHeader)) {
		log.Warn().
			Str("request-id", requestid.Get(c)).
			Msg("webhook delivery with missing or invalid signature")

		c.JSON(http.StatusBadRequest, httpError{
			Error: errSignatureInvalid.Error(),
		})
		return
	}

	var event webhookEvent
	err = json.Unmarshal(body, &event)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidBody.Error(),
		})
		return
	}

	eventKey := "webhook:" + event.Event + ":" + event.Data.Reference
	if _, processed := co.Events.Get(c.Request.Context(), eventKey); processed {
		c.Status(http.StatusOK)
		return
	}

	switch event.Event {
	case "charge.success":
		_, err = models.CompleteByReference(event.Data.Reference)
	case "charge.failed":
		_, err = models.MarkFailedByReference(event.Data.Reference)
	default:
		log.Info().
			Str("request-id", requestid.Get(c)).
			Str("event", event.Event).
			Msg("ignoring unhandled webhook event")

		c.Status(http.StatusOK)
		return
	}

	if err != nil {
		// A reference we have no transaction for may belong to a race or
		// a stale replayed event and needs manual investigation.
		if errors.Is(err, models.ErrResourceNotFound) {
			log.Warn().
				Str("request-id", requestid.Get(c)).
				Str("event", event.Event).
				Str("reference", event.Data.Reference).
				Msg("webhook event for unknown transaction reference")

			c.JSON(http.StatusNotFound, httpError{
				Error: err.Error(),
			})
			return
		}

		log.Error().
			Str("request-id", requestid.Get(c)).
			Str("event", event.Event).
			Str("reference", event.Data.Reference).
			Msgf("%T: %v", err, err)

		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.Events.Set(c.Request.Context(), eventKey, "processed", eventRetention)
	if err != nil {
		// Reconciliation is idempotent, a redelivery of this event will
		// be acknowledged from the database instead.
		log.Warn().
			Str("request-id", requestid.Get(c)).
			Msgf("recording processed webhook event failed: %v", err)
	}

	c.Status(http.StatusOK)
}
