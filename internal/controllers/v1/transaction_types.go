package v1

import (
	"fmt"

	"github.com/ajo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/d1b7c4c6-...-..."`                       // The transaction itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"`   // The account the transaction belongs to
}

type Transaction struct {
	models.DefaultModel
	AccountID  string                 `json:"accountId" example:"d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"` // ID of the account
	PlanID     string                 `json:"planId" example:"b23627c1-cbcd-4b35-ae02-1b0269b2b5c3"`    // ID of the savings plan
	Kind       models.TransactionKind `json:"kind" example:"Deposit"`                                   // Deposit or Withdrawal
	Amount     decimal.Decimal        `json:"amount" example:"10000.00"`                                // The amount credited to or debited from the plan
	Fee        decimal.Decimal        `json:"fee" example:"100.00"`                                     // The fee charged on top of the amount
	AmountPaid decimal.Decimal        `json:"amountPaid" example:"10100.00"`                            // The total the payer is charged
	Reference  string                 `json:"reference" example:"7PVGX8MEk85tgeEpVDtD"`                 // Provider reference of the transaction
	Completed  bool                   `json:"completed" example:"true"`                                 // Has the transaction settled?
	Links      TransactionLinks       `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		AccountID:    model.AccountID.String(),
		PlanID:       model.PlanID.String(),
		Kind:         model.Kind,
		Amount:       model.Amount,
		Fee:          model.Fee,
		AmountPaid:   model.AmountPaid,
		Reference:    model.Reference,
		Completed:    model.Completed,
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Kind      models.TransactionKind `json:"kind" form:"kind"`                          // By kind
	Completed bool                   `json:"completed" form:"completed"`                // Has the transaction settled?
	Reference string                 `form:"reference" filterField:"false"`             // By glob pattern on the reference
	AccountID string                 `form:"accountId" filterField:"false"`             // By ID of the Account
	PlanID    string                 `form:"planId" filterField:"false"`                // By ID of the Plan
	Date      string                 `form:"date" filterField:"false"`                  // On this day. Ignores exact time.
	FromDate  string                 `form:"fromDate" filterField:"false"`              // On or after this day
	UntilDate string                 `form:"untilDate" filterField:"false"`             // On or before this day
	Offset    uint                   `form:"offset" filterField:"false"`                // The offset of the first Transaction returned. Defaults to 0.
	Limit     int                    `form:"limit" filterField:"false"`                 // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		Kind:      f.Kind,
		Completed: f.Completed,
	}
}
