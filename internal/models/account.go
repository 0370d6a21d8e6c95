package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Account represents the owner of savings plans and transactions.
//
// Registration and authentication are handled by an external identity
// provider, the backend only stores the data it needs to key plans and
// transactions and to cross-check deposit requests.
type Account struct {
	DefaultModel
	Email       string `json:"email" gorm:"uniqueIndex" example:"ada@example.com"` // Email address registered with the identity provider
	FirstName   string `json:"firstName" example:"Ada"`
	LastName    string `json:"lastName" example:"Obi"`
	PhoneNumber string `json:"phoneNumber" example:"+2348012345678"`

	// Verified is set by the external KYC flow once the account holder's
	// identity has been confirmed.
	Verified   bool       `json:"verified" example:"true"`
	VerifiedAt *time.Time `json:"verifiedAt"`
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.PhoneNumber = strings.TrimSpace(a.PhoneNumber)

	if a.Email == "" {
		return ErrAccountEmailEmpty
	}

	return nil
}
