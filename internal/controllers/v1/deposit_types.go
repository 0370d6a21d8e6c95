package v1

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositEditable represents all user configurable parameters
type DepositEditable struct {
	AccountID uuid.UUID       `json:"accountId" example:"d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"` // ID of the account making the deposit
	PlanCode  string          `json:"planCode" example:"4217"`                                  // Code of the savings plan to fund
	Amount    decimal.Decimal `json:"amount" example:"10000.00"`                                // Deposit amount, must match the plan's target amount
	Email     string          `json:"email" example:"jane.doe@example.com"`                     // Email address of the account holder
}

// Deposit is the result of initiating a deposit: an open charge session
// with the payment provider and the pending ledger entry for it.
type Deposit struct {
	AuthorizationURL string          `json:"authorizationUrl" example:"https://checkout.paystack.com/0peioxfhpn"` // Where the payer completes the charge
	AccessCode       string          `json:"accessCode" example:"0peioxfhpn"`                                     // Access code of the charge session
	Reference        string          `json:"reference" example:"7PVGX8MEk85tgeEpVDtD"`                            // Reference correlating the charge with its webhook
	AmountPaid       decimal.Decimal `json:"amountPaid" example:"10100.00"`                                       // Amount plus fee the payer is charged
	Transaction      Transaction     `json:"transaction"`                                                         // The pending ledger entry
}

type DepositResponse struct {
	Data  *Deposit `json:"data"`                                                        // Data for the Deposit
	Error *string  `json:"error" example:"the deposit amount must be a positive decimal number"` // The error, if any occurred
}
