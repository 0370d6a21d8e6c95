package v1

import (
	"fmt"

	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanEditable represents all user configurable parameters
type PlanEditable struct {
	AccountID    uuid.UUID        `json:"accountId" example:"d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"` // ID of the account the plan belongs to
	Name         string           `json:"name" example:"December rent" default:""`                  // Name of the savings plan
	Frequency    models.Frequency `json:"frequency" example:"Weekly"`                               // How often payouts happen: Daily, Weekly or Monthly
	TargetAmount decimal.Decimal  `json:"targetAmount" example:"10000.00"`                          // The amount the plan saves towards
	PayoutSize   decimal.Decimal  `json:"payoutSize" example:"2500.00"`                             // The amount of a single payout
}

func (editable PlanEditable) model() models.SavingsPlan {
	return models.SavingsPlan{
		AccountID:    editable.AccountID,
		Name:         editable.Name,
		Frequency:    editable.Frequency,
		TargetAmount: editable.TargetAmount,
		PayoutSize:   editable.PayoutSize,
	}
}

type PlanLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/plans/4217"`                        // The plan itself
	Account      string `json:"account" example:"https://example.com/api/v1/accounts/d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"` // The account the plan belongs to
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?planId=b23627c1-cbcd-4b35-ae02-1b0269b2b5c3"` // Transactions of this plan
}

type Plan struct {
	models.DefaultModel
	PlanEditable
	Code             string          `json:"code" example:"4217"`                  // Short public identifier for the plan
	RemainingBalance decimal.Decimal `json:"remainingBalance" example:"7500.00"`   // The amount not yet paid out
	PayoutsTotal     uint            `json:"payoutsTotal" example:"4"`             // The total number of payouts
	PayoutsRemaining uint            `json:"payoutsRemaining" example:"3"`         // The number of payouts not yet executed
	Active           bool            `json:"active" example:"true"`                // Has the plan been funded?
	StartedOn        types.Date      `json:"startedOn"`                            // The day the plan was funded
	LastPayoutOn     types.Date      `json:"lastPayoutOn"`                         // The day of the most recent payout
	NextPayoutOn     types.Date      `json:"nextPayoutOn"`                         // The day the next payout is due
	Links            PlanLinks       `json:"links"`
}

func newPlan(c *gin.Context, model models.SavingsPlan) Plan {
	url := c.GetString(string(models.DBContextURL))

	return Plan{
		DefaultModel: model.DefaultModel,
		PlanEditable: PlanEditable{
			AccountID:    model.AccountID,
			Name:         model.Name,
			Frequency:    model.Frequency,
			TargetAmount: model.TargetAmount,
			PayoutSize:   model.PayoutSize,
		},
		Code:             model.Code,
		RemainingBalance: model.RemainingBalance,
		PayoutsTotal:     model.PayoutsTotal,
		PayoutsRemaining: model.PayoutsRemaining,
		Active:           model.Active,
		StartedOn:        model.StartedOn,
		LastPayoutOn:     model.LastPayoutOn,
		NextPayoutOn:     model.NextPayoutOn(),
		Links: PlanLinks{
			Self:         fmt.Sprintf("%s/v1/plans/%s", url, model.Code),
			Account:      fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
			Transactions: fmt.Sprintf("%s/v1/transactions?planId=%s", url, model.ID),
		},
	}
}

type PlanListResponse struct {
	Data       []Plan      `json:"data"`                                                          // List of Plans
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PlanResponse struct {
	Data  *Plan   `json:"data"`                                                          // Data for the Plan
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PlanQueryFilter struct {
	AccountID string           `form:"accountId" filterField:"false"` // By ID of the Account
	Frequency models.Frequency `form:"frequency"`                     // By payout frequency
	Active    bool             `form:"active"`                        // Is the plan funded?
	Name      string           `form:"name" filterField:"false"`      // By string in the name
	Offset    uint             `form:"offset" filterField:"false"`    // The offset of the first Plan returned. Defaults to 0.
	Limit     int              `form:"limit" filterField:"false"`     // Maximum number of Plans to return. Defaults to 50.
}

func (f PlanQueryFilter) model() models.SavingsPlan {
	return models.SavingsPlan{
		Frequency: f.Frequency,
		Active:    f.Active,
	}
}
