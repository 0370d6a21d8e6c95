package v1_test

import (
	"net/http"

	v1 "github.com/ajo-zero/backend/internal/controllers/v1"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateDeposit() {
	account := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	co, server := suite.paystackController("7PVGX8MEk85tgeEpVDtD")
	defer server.Close()

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: account.ID,
		PlanCode:  plan.Code,
		Amount:    decimal.NewFromInt(10000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DepositResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("7PVGX8MEk85tgeEpVDtD", response.Data.Reference)
	suite.Assert().Equal("https://checkout.example.com/0peioxfhpn", response.Data.AuthorizationURL)
	suite.Assert().True(response.Data.AmountPaid.Equal(decimal.NewFromInt(10100)), "amount paid is %s", response.Data.AmountPaid)
	suite.Assert().False(response.Data.Transaction.Completed, "the ledger entry must be pending until the webhook settles it")

	// The pending transaction is in the ledger
	var transaction models.Transaction
	suite.Require().Nil(models.DB.Where(&models.Transaction{Reference: "7PVGX8MEk85tgeEpVDtD"}).First(&transaction).Error)
	suite.Assert().Equal(models.KindDeposit, transaction.Kind)
	suite.Assert().True(transaction.Fee.Equal(decimal.NewFromInt(100)), "fee is %s", transaction.Fee)
	suite.Assert().False(transaction.Completed)

	// The plan is not active until the charge settles
	var reloaded models.SavingsPlan
	suite.Require().Nil(models.DB.First(&reloaded, plan.ID).Error)
	suite.Assert().False(reloaded.Active)
}

func (suite *TestSuiteStandard) TestCreateDepositUnknownAccount() {
	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: uuid.New(),
		PlanCode:  "4217",
		Amount:    decimal.NewFromInt(10000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateDepositEmailMismatch() {
	account := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: account.ID,
		PlanCode:  plan.Code,
		Amount:    decimal.NewFromInt(10000),
		Email:     "someone.else@example.com",
	})

	// The response must not reveal whether the account exists
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateDepositUnknownPlan() {
	account := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: account.ID,
		PlanCode:  "0000",
		Amount:    decimal.NewFromInt(10000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateDepositForeignPlan() {
	jane := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	john := suite.createTestAccount(models.Account{Email: "john.oke@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: john.ID})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: jane.ID,
		PlanCode:  plan.Code,
		Amount:    decimal.NewFromInt(10000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateDepositAmountMismatch() {
	account := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: account.ID,
		PlanCode:  plan.Code,
		Amount:    decimal.NewFromInt(5000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// No ledger entry may be written for a rejected deposit
	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

func (suite *TestSuiteStandard) TestCreateDepositAmountNotPositive() {
	account := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: account.ID,
		PlanCode:  plan.Code,
		Amount:    decimal.NewFromInt(-10000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateDepositGatewayUnavailable() {
	account := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	// The default controller's gateway points to an unreachable address
	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/deposits", v1.DepositEditable{
		AccountID: account.ID,
		PlanCode:  plan.Code,
		Amount:    decimal.NewFromInt(10000),
		Email:     "jane.doe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadGateway)

	// Nothing may be written when the provider cannot be reached
	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

func (suite *TestSuiteStandard) TestDepositOptions() {
	recorder := test.Request(suite.controller(), suite.T(), http.MethodOptions, "/v1/deposits", "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("POST", recorder.Header().Get("allow"))
}
