package v1

import (
	"fmt"

	"github.com/ajo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Email       string `json:"email" example:"jane.doe@example.com"`  // Email address, unique across all accounts
	FirstName   string `json:"firstName" example:"Jane" default:""`   // First name of the account holder
	LastName    string `json:"lastName" example:"Doe" default:""`     // Last name of the account holder
	PhoneNumber string `json:"phoneNumber" example:"+2348012345678"`  // Phone number of the account holder
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Email:       editable.Email,
		FirstName:   editable.FirstName,
		LastName:    editable.LastName,
		PhoneNumber: editable.PhoneNumber,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`                 // The account itself
	Plans        string `json:"plans" example:"https://example.com/api/v1/plans?accountId=af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`         // Savings plans of this account
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?accountId=af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"` // Transactions of this account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	Verified bool         `json:"verified" example:"true"` // Has the identity of the account holder been verified?
	Links    AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Email:       model.Email,
			FirstName:   model.FirstName,
			LastName:    model.LastName,
			PhoneNumber: model.PhoneNumber,
		},
		Verified: model.Verified,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Plans:        fmt.Sprintf("%s/v1/plans?accountId=%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?accountId=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of Accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the Account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Email    string `form:"email"`                      // By email address
	Verified bool   `form:"verified"`                   // Is the account verified?
	Search   string `form:"search" filterField:"false"` // By string in first or last name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Email:    f.Email,
		Verified: f.Verified,
	}
}
