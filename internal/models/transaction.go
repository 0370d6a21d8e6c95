package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind distinguishes money moving into and out of a plan.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "Deposit"
	KindWithdrawal TransactionKind = "Withdrawal"
)

// Transaction is a single entry in the ledger. Deposits are opened pending
// when a charge session is created with the payment provider and completed
// by the provider's webhook; withdrawals are written by the payout engine.
type Transaction struct {
	DefaultModel
	AccountID uuid.UUID       `json:"accountId" example:"d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"`
	Account   Account         `json:"-"`
	PlanID    uuid.UUID       `json:"planId" example:"40a0ccfa-d732-4ff5-a4e6-c8ed1b8b76f4"`
	Plan      SavingsPlan     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Kind      TransactionKind `json:"kind" example:"Deposit"`

	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"10000.00"`
	Fee        decimal.Decimal `json:"fee" gorm:"type:DECIMAL(20,8)" example:"100.00"`
	AmountPaid decimal.Decimal `json:"amountPaid" gorm:"type:DECIMAL(20,8)" example:"10100.00"` // Amount plus fee for deposits

	// Reference is the payment provider's correlation id for the charge
	// session. It is the key webhooks are matched on.
	Reference string `json:"reference" gorm:"uniqueIndex" example:"t9zxn2mgkl"`
	Completed bool   `json:"completed" example:"false"`
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// OpenPendingDeposit writes the pending ledger entry for a charge session
// that was opened with the payment provider.
//
// The plan must belong to the account and, because plans are funded in
// full with a single deposit, the amount must match the plan's target
// amount exactly.
func OpenPendingDeposit(account Account, plan SavingsPlan, amount decimal.Decimal, fee decimal.Decimal, reference string) (Transaction, error) {
	if plan.AccountID != account.ID {
		return Transaction{}, ErrPlanMismatch
	}

	if !amount.Equal(plan.TargetAmount) {
		return Transaction{}, ErrAmountMismatch
	}

	transaction := Transaction{
		AccountID:  account.ID,
		PlanID:     plan.ID,
		Kind:       KindDeposit,
		Amount:     amount,
		Fee:        fee,
		AmountPaid: amount.Add(fee),
		Reference:  reference,
		Completed:  false,
	}

	err := DB.Create(&transaction).Error
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// CompleteByReference marks the transaction for a payment reference as
// completed and, for deposits, activates the plan it funds. Both updates
// happen in the same database transaction.
//
// The operation is idempotent: a transaction that is already completed is
// returned unchanged, so redelivered success events have no effect.
func CompleteByReference(reference string) (Transaction, error) {
	var transaction Transaction

	err := DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&Transaction{Reference: reference}).First(&transaction).Error
		if err != nil {
			return err
		}

		if transaction.Completed {
			return nil
		}

		transaction.Completed = true
		err = tx.Model(&transaction).Select("Completed").Updates(&transaction).Error
		if err != nil {
			return err
		}

		if transaction.Kind != KindDeposit {
			return nil
		}

		var plan SavingsPlan
		err = tx.First(&plan, transaction.PlanID).Error
		if err != nil {
			return err
		}

		return plan.Activate(tx)
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// MarkFailedByReference records the provider's negative acknowledgement for
// a charge session. A completion that already happened is never reversed,
// webhook delivery order is not guaranteed.
func MarkFailedByReference(reference string) (Transaction, error) {
	var transaction Transaction
	err := DB.Where(&Transaction{Reference: reference}).First(&transaction).Error
	if err != nil {
		return Transaction{}, err
	}

	// A pending transaction already is in the state a failure event
	// acknowledges, so there is nothing to write in either case.
	return transaction, nil
}

// RealizePayout realizes one payout for the plan: the plan's progress
// fields are updated and a completed withdrawal is appended to the ledger,
// atomically.
//
// The payout amount is the plan's payout size, capped to the remaining
// balance so that the final payout drains the plan exactly.
func RealizePayout(planID uuid.UUID) (Transaction, error) {
	var transaction Transaction

	err := DB.Transaction(func(tx *gorm.DB) error {
		var plan SavingsPlan
		err := tx.First(&plan, planID).Error
		if err != nil {
			return err
		}

		amount := plan.PayoutSize
		if amount.GreaterThan(plan.RemainingBalance) {
			amount = plan.RemainingBalance
		}

		err = plan.RecordPayout(tx, amount)
		if err != nil {
			return err
		}

		transaction = Transaction{
			AccountID:  plan.AccountID,
			PlanID:     plan.ID,
			Kind:       KindWithdrawal,
			Amount:     amount,
			Fee:        decimal.Zero,
			AmountPaid: amount,
			Reference:  "payout-" + uuid.NewString(),
			Completed:  true,
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}
