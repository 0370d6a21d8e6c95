package models

import (
	"errors"
	"strings"

	"github.com/ajo-zero/backend/internal/planid"
	"github.com/ajo-zero/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the interval at which payouts of a savings plan are realized.
type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// codeAttempts bounds how often plan creation retries code generation
// when the generated code collides with an existing plan.
const codeAttempts = 32

// SavingsPlan is a fixed-target savings goal. It is funded by a single
// full-amount deposit and then drained by scheduled payouts.
type SavingsPlan struct {
	DefaultModel
	Code      string    `json:"code" gorm:"uniqueIndex" example:"4217"` // Short public identifier for the plan
	AccountID uuid.UUID `json:"accountId" example:"d4483b80-8ff8-444e-89e8-0bbbdfb27dd6"`
	Account   Account   `json:"-"`
	Name      string    `json:"name" example:"December rent"`
	Frequency Frequency `json:"frequency" example:"Weekly"`

	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)" example:"10000.00"` // The amount the plan saves towards
	PayoutSize   decimal.Decimal `json:"payoutSize" gorm:"type:DECIMAL(20,8)" example:"2500.00"`    // The amount of a single payout

	// RemainingBalance starts at TargetAmount and only decreases as payouts
	// are realized. Deposits do not change it.
	RemainingBalance decimal.Decimal `json:"remainingBalance" gorm:"type:DECIMAL(20,8)" example:"7500.00"`
	PayoutsTotal     uint            `json:"payoutsTotal" example:"4"`
	PayoutsRemaining uint            `json:"payoutsRemaining" example:"3"`

	Active       bool       `json:"active" example:"true"` // Set by the first completed deposit, never reverts
	StartedOn    types.Date `json:"startedOn"`
	LastPayoutOn types.Date `json:"lastPayoutOn"`
}

func (p *SavingsPlan) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	return tx.First(&Account{}, p.AccountID).Error
}

func (p *SavingsPlan) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}

// CreateSavingsPlan validates the plan parameters, derives the payout
// schedule fields and persists the plan with a freshly allocated code.
//
// Code allocation relies on the unique index on savings_plans.code: a
// conflicting insert is retried with a new code instead of checking first,
// so two concurrent creations can never commit the same code.
func CreateSavingsPlan(plan SavingsPlan) (SavingsPlan, error) {
	if !plan.TargetAmount.IsPositive() || !plan.PayoutSize.IsPositive() {
		return SavingsPlan{}, ErrPlanAmountsNotPositive
	}

	if plan.PayoutSize.GreaterThanOrEqual(plan.TargetAmount) {
		return SavingsPlan{}, ErrPayoutNotBelowTarget
	}

	switch plan.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return SavingsPlan{}, ErrPlanFrequencyInvalid
	}

	plan.PayoutsTotal = uint(plan.TargetAmount.Div(plan.PayoutSize).Ceil().IntPart())
	plan.PayoutsRemaining = plan.PayoutsTotal
	plan.RemainingBalance = plan.TargetAmount
	plan.Active = false
	plan.StartedOn = types.Date{}
	plan.LastPayoutOn = types.Date{}

	for range codeAttempts {
		plan.Code = planid.New()

		err := DB.Create(&plan).Error
		if errors.Is(err, ErrPlanCodeInUse) {
			continue
		}

		return plan, err
	}

	return SavingsPlan{}, ErrPlanCodesExhausted
}

// Activate marks the plan as active. It is idempotent: an already active
// plan is returned unchanged and StartedOn is only set once.
func (p *SavingsPlan) Activate(tx *gorm.DB) error {
	if p.Active {
		return nil
	}

	p.Active = true
	p.StartedOn = types.Today()

	return tx.Model(p).Select("Active", "StartedOn").Updates(p).Error
}

// RecordPayout applies a single realized payout to the plan.
func (p *SavingsPlan) RecordPayout(tx *gorm.DB, amount decimal.Decimal) error {
	if p.PayoutsRemaining == 0 {
		return ErrPlanExhausted
	}

	if amount.GreaterThan(p.RemainingBalance) {
		return ErrInsufficientBalance
	}

	p.PayoutsRemaining--
	p.RemainingBalance = p.RemainingBalance.Sub(amount)
	p.LastPayoutOn = types.Today()

	return tx.Model(p).Select("PayoutsRemaining", "RemainingBalance", "LastPayoutOn").Updates(p).Error
}

// NextPayoutOn returns the date on which the next payout of the plan is due.
// The first payout is due one frequency interval after activation.
func (p SavingsPlan) NextPayoutOn() types.Date {
	base := p.LastPayoutOn
	if base.IsZero() {
		base = p.StartedOn
	}

	// A plan that has not been funded yet has no payout schedule
	if base.IsZero() {
		return types.Date{}
	}

	switch p.Frequency {
	case FrequencyDaily:
		return base.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return base.AddDate(0, 0, 7)
	default:
		return base.AddDate(0, 1, 0)
	}
}

// PayoutDue reports whether a payout of the plan is due on the given date.
func (p SavingsPlan) PayoutDue(today types.Date) bool {
	if !p.Active || p.PayoutsRemaining == 0 {
		return false
	}

	return !p.NextPayoutOn().After(today)
}

// DuePlans returns all plans with a payout due on the given date.
func DuePlans(today types.Date) ([]SavingsPlan, error) {
	var candidates []SavingsPlan
	err := DB.
		Where(&SavingsPlan{Active: true}, "Active").
		Where("payouts_remaining > 0").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var due []SavingsPlan
	for _, plan := range candidates {
		if plan.PayoutDue(today) {
			due = append(due, plan)
		}
	}

	return due, nil
}
