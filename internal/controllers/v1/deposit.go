package v1

import (
	"net/http"
	"strings"

	"github.com/ajo-zero/backend/internal/httputil"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/paystack"
	"github.com/gin-gonic/gin"
)

// RegisterDepositRoutes registers the routes for deposits with
// the RouterGroup that is passed.
func (co Controller) RegisterDepositRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsDeposit)
	r.POST("", co.CreateDeposit)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deposits
// @Success		204
// @Router			/v1/deposits [options]
func (co Controller) OptionsDeposit(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateDeposit opens a charge session with the payment provider and
// records the pending ledger entry for it.
//
// Nothing is written locally before the provider has accepted the charge,
// and nothing is written at all when any of the validations fail.
//
// @Summary		Initiate deposit
// @Description	Opens a payment session for funding a savings plan and records a pending transaction
// @Tags			Deposits
// @Produce		json
// @Success		201		{object}	DepositResponse
// @Failure		400		{object}	DepositResponse
// @Failure		404		{object}	DepositResponse
// @Failure		502		{object}	DepositResponse
// @Param			deposit	body		DepositEditable	true	"Deposit"
// @Router			/v1/deposits [post]
func (co Controller) CreateDeposit(c *gin.Context) {
	var editable DepositEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{
			Error: &s,
		})
		return
	}

	if !editable.Amount.IsPositive() {
		s := errDepositAmountInvalid.Error()
		c.JSON(http.StatusBadRequest, DepositResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, editable.AccountID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{
			Error: &s,
		})
		return
	}

	// The email must belong to the account the deposit is made for. A
	// mismatch is answered exactly like an unknown account so that the
	// endpoint does not leak which email an account is registered with.
	if strings.ToLower(strings.TrimSpace(editable.Email)) != account.Email {
		s := models.ErrResourceNotFound.Error() + " Account matching your query"
		c.JSON(http.StatusNotFound, DepositResponse{
			Error: &s,
		})
		return
	}

	var plan models.SavingsPlan
	err = models.DB.Where(&models.SavingsPlan{Code: editable.PlanCode}).First(&plan).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{
			Error: &s,
		})
		return
	}

	if plan.AccountID != account.ID {
		s := models.ErrPlanMismatch.Error()
		c.JSON(http.StatusBadRequest, DepositResponse{
			Error: &s,
		})
		return
	}

	if !editable.Amount.Equal(plan.TargetAmount) {
		s := models.ErrAmountMismatch.Error()
		c.JSON(http.StatusBadRequest, DepositResponse{
			Error: &s,
		})
		return
	}

	// The payer is charged the amount plus the flat deposit fee.
	amountPaid := editable.Amount.Add(co.DepositFee)

	session, err := co.Gateway.InitializeTransaction(c.Request.Context(), account.Email, paystack.Kobo(amountPaid))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{
			Error: &s,
		})
		return
	}

	transaction, err := models.OpenPendingDeposit(account, plan, editable.Amount, co.DepositFee, session.Data.Reference)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{
			Error: &s,
		})
		return
	}

	data := Deposit{
		AuthorizationURL: session.Data.AuthorizationURL,
		AccessCode:       session.Data.AccessCode,
		Reference:        session.Data.Reference,
		AmountPaid:       transaction.AmountPaid,
		Transaction:      newTransaction(c, transaction),
	}
	c.JSON(http.StatusCreated, DepositResponse{Data: &data})
}
