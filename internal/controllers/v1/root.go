package v1

import (
	"net/http"

	"github.com/ajo-zero/backend/internal/httputil"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts"`         // Account management
	Plans        string `json:"plans" example:"https://example.com/api/v1/plans"`               // Savings plan management
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // Transaction listing
	Deposits     string `json:"deposits" example:"https://example.com/api/v1/deposits"`         // Deposit initiation
	Webhooks     string `json:"webhooks" example:"https://example.com/api/v1/webhooks"`         // Payment provider webhooks
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Accounts:     url + "/accounts",
			Plans:        url + "/plans",
			Transactions: url + "/transactions",
			Deposits:     url + "/deposits",
			Webhooks:     url + "/webhooks",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
