package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Account errors
var (
	ErrAccountEmailInUse = errors.New("this email address is already registered")
	ErrAccountEmailEmpty = errors.New("the email address must be set")
)

// Savings plan errors
var (
	ErrPlanAmountsNotPositive = errors.New("the target amount and payout size must be larger than zero")
	ErrPayoutNotBelowTarget   = errors.New("the payout size must be smaller than the target amount")
	ErrPlanFrequencyInvalid   = errors.New("the payout frequency must be one of Daily, Weekly, Monthly")
	ErrPlanCodeInUse          = errors.New("this plan code is already in use")
	ErrPlanCodesExhausted     = errors.New("no free plan code could be allocated, please try again")
	ErrPlanExhausted          = errors.New("this savings plan has no payouts left")
	ErrInsufficientBalance    = errors.New("the payout amount exceeds the remaining balance of this savings plan")
)

// Transaction errors
var (
	ErrPlanMismatch      = errors.New("the savings plan does not belong to this account")
	ErrAmountMismatch    = errors.New("the amount does not match the target amount of the savings plan")
	ErrReferenceInUse    = errors.New("a transaction with this payment reference already exists")
	ErrAmountNotPositive = errors.New("transaction amounts must be larger than zero")
)
