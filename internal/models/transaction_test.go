package models_test

import (
	"testing"

	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOpenPendingDeposit() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	transaction, err := models.OpenPendingDeposit(account, plan, decimal.NewFromFloat(10000), decimal.NewFromFloat(100), "ref-12345")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.KindDeposit, transaction.Kind)
	assert.True(suite.T(), transaction.Fee.Equal(decimal.NewFromFloat(100)))
	assert.True(suite.T(), transaction.AmountPaid.Equal(decimal.NewFromFloat(10100)), "amount paid is %s", transaction.AmountPaid)
	assert.False(suite.T(), transaction.Completed)
	assert.Equal(suite.T(), "ref-12345", transaction.Reference)
}

func (suite *TestSuiteStandard) TestOpenPendingDepositValidation() {
	account := suite.createTestAccount(models.Account{})
	other := suite.createTestAccount(models.Account{Email: "other@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	tests := []struct {
		name    string
		account models.Account
		amount  decimal.Decimal
		err     error
	}{
		{"foreign plan", other, decimal.NewFromFloat(10000), models.ErrPlanMismatch},
		{"partial amount", account, decimal.NewFromFloat(5000), models.ErrAmountMismatch},
		{"excess amount", account, decimal.NewFromFloat(10001), models.ErrAmountMismatch},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.OpenPendingDeposit(tt.account, plan, tt.amount, decimal.NewFromFloat(100), "ref-"+tt.name)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestOpenPendingDepositDuplicateReference() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	_, err := models.OpenPendingDeposit(account, plan, plan.TargetAmount, decimal.NewFromFloat(100), "ref-dup")
	require.Nil(suite.T(), err)

	_, err = models.OpenPendingDeposit(account, plan, plan.TargetAmount, decimal.NewFromFloat(100), "ref-dup")
	assert.ErrorIs(suite.T(), err, models.ErrReferenceInUse)
}

func (suite *TestSuiteStandard) TestCompleteByReference() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	pending, err := models.OpenPendingDeposit(account, plan, plan.TargetAmount, decimal.NewFromFloat(100), "ref-ok")
	require.Nil(suite.T(), err)

	completed, err := models.CompleteByReference("ref-ok")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), pending.ID, completed.ID)
	assert.True(suite.T(), completed.Completed)

	var reloaded models.SavingsPlan
	require.Nil(suite.T(), models.DB.First(&reloaded, plan.ID).Error)
	assert.True(suite.T(), reloaded.Active)
	assert.True(suite.T(), reloaded.StartedOn.Equal(types.Today()))
}

// TestCompleteByReferenceIdempotent verifies that redelivering a success
// event changes nothing: the completed transaction is returned as is and
// the plan's activation date stays untouched.
func (suite *TestSuiteStandard) TestCompleteByReferenceIdempotent() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	_, err := models.OpenPendingDeposit(account, plan, plan.TargetAmount, decimal.NewFromFloat(100), "ref-twice")
	require.Nil(suite.T(), err)

	first, err := models.CompleteByReference("ref-twice")
	require.Nil(suite.T(), err)

	second, err := models.CompleteByReference("ref-twice")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), first.ID, second.ID)
	assert.True(suite.T(), second.Completed)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Transaction{}).Where("reference = ?", "ref-twice").Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestCompleteByReferenceNotFound() {
	_, err := models.CompleteByReference("ref-unknown")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMarkFailedByReference() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	_, err := models.OpenPendingDeposit(account, plan, plan.TargetAmount, decimal.NewFromFloat(100), "ref-fail")
	require.Nil(suite.T(), err)

	transaction, err := models.MarkFailedByReference("ref-fail")
	require.Nil(suite.T(), err)
	assert.False(suite.T(), transaction.Completed)
}

// A failure event arriving after a success event must not reverse the
// completion.
func (suite *TestSuiteStandard) TestMarkFailedByReferenceAfterCompletion() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	_, err := models.OpenPendingDeposit(account, plan, plan.TargetAmount, decimal.NewFromFloat(100), "ref-late-fail")
	require.Nil(suite.T(), err)

	_, err = models.CompleteByReference("ref-late-fail")
	require.Nil(suite.T(), err)

	transaction, err := models.MarkFailedByReference("ref-late-fail")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), transaction.Completed)
}

func (suite *TestSuiteStandard) TestMarkFailedByReferenceNotFound() {
	_, err := models.MarkFailedByReference("ref-unknown")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRealizePayout() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})
	require.Nil(suite.T(), plan.Activate(models.DB))

	withdrawal, err := models.RealizePayout(plan.ID)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.KindWithdrawal, withdrawal.Kind)
	assert.True(suite.T(), withdrawal.Amount.Equal(decimal.NewFromFloat(2500)))
	assert.True(suite.T(), withdrawal.Completed)

	var reloaded models.SavingsPlan
	require.Nil(suite.T(), models.DB.First(&reloaded, plan.ID).Error)
	assert.Equal(suite.T(), uint(3), reloaded.PayoutsRemaining)
	assert.True(suite.T(), reloaded.RemainingBalance.Equal(decimal.NewFromFloat(7500)), "remaining balance is %s", reloaded.RemainingBalance)
}

// TestRealizePayoutDrainsPlan verifies that the final payout is capped to
// the remaining balance when the target is not a multiple of the payout
// size.
func (suite *TestSuiteStandard) TestRealizePayoutDrainsPlan() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{
		AccountID:    account.ID,
		TargetAmount: decimal.NewFromFloat(10000),
		PayoutSize:   decimal.NewFromFloat(3000),
	})
	require.Nil(suite.T(), plan.Activate(models.DB))

	for range 3 {
		_, err := models.RealizePayout(plan.ID)
		require.Nil(suite.T(), err)
	}

	final, err := models.RealizePayout(plan.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), final.Amount.Equal(decimal.NewFromFloat(1000)), "final payout is %s", final.Amount)

	var reloaded models.SavingsPlan
	require.Nil(suite.T(), models.DB.First(&reloaded, plan.ID).Error)
	assert.True(suite.T(), reloaded.RemainingBalance.IsZero())
	assert.Equal(suite.T(), uint(0), reloaded.PayoutsRemaining)

	_, err = models.RealizePayout(plan.ID)
	assert.ErrorIs(suite.T(), err, models.ErrPlanExhausted)
}

func (suite *TestSuiteStandard) TestRealizePayoutUnknownPlan() {
	_, err := models.RealizePayout(uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
