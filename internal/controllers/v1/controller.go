// Package v1 implements the v1 API of the backend.
package v1

import (
	"github.com/ajo-zero/backend/internal/eventcache"
	"github.com/ajo-zero/backend/internal/paystack"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Controller holds the dependencies of the v1 API handlers.
type Controller struct {
	// Gateway is the Paystack client used to open charge sessions and
	// verify webhook signatures.
	Gateway *paystack.Client

	// Events remembers webhook deliveries that were already processed.
	Events eventcache.Cache

	// DepositFee is the flat fee in naira added to every deposit charge.
	DepositFee decimal.Decimal
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	{
		r.GET("", GetV1)
		r.OPTIONS("", OptionsV1)
	}

	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterPlanRoutes(r.Group("/plans"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterDepositRoutes(r.Group("/deposits"))
	co.RegisterWebhookRoutes(r.Group("/webhooks"))
}
