package models_test

import (
	"github.com/ajo-zero/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAccountNormalization() {
	account := suite.createTestAccount(models.Account{
		Email:     "  Ada@Example.com ",
		FirstName: " Ada ",
		LastName:  "Obi\t",
	})

	assert.Equal(suite.T(), "ada@example.com", account.Email)
	assert.Equal(suite.T(), "Ada", account.FirstName)
	assert.Equal(suite.T(), "Obi", account.LastName)
}

func (suite *TestSuiteStandard) TestAccountEmailRequired() {
	err := models.DB.Create(&models.Account{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountEmailEmpty)
}

func (suite *TestSuiteStandard) TestAccountEmailUnique() {
	suite.createTestAccount(models.Account{Email: "ada@example.com"})

	err := models.DB.Create(&models.Account{Email: "ada@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountEmailInUse)
}

func (suite *TestSuiteStandard) TestConnectClosedDatabase() {
	suite.CloseDB()

	err := models.DB.Create(&models.Account{Email: "late@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
