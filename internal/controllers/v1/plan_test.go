package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/ajo-zero/backend/internal/controllers/v1"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreatePlan() {
	account := suite.createTestAccount(models.Account{})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/plans", v1.PlanEditable{
		AccountID:    account.ID,
		Name:         "December rent",
		Frequency:    models.FrequencyWeekly,
		TargetAmount: decimal.NewFromInt(10000),
		PayoutSize:   decimal.NewFromInt(2500),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Data.Code, 4)
	suite.Assert().Equal(uint(4), response.Data.PayoutsTotal)
	suite.Assert().Equal(uint(4), response.Data.PayoutsRemaining)
	suite.Assert().True(response.Data.RemainingBalance.Equal(decimal.NewFromInt(10000)), "remaining balance is %s", response.Data.RemainingBalance)
	suite.Assert().False(response.Data.Active, "a new plan must not be active before it is funded")
	suite.Assert().Contains(response.Data.Links.Self, response.Data.Code)
}

func (suite *TestSuiteStandard) TestCreatePlanRoundsPayoutsUp() {
	account := suite.createTestAccount(models.Account{})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodPost, "/v1/plans", v1.PlanEditable{
		AccountID:    account.ID,
		Name:         "School fees",
		Frequency:    models.FrequencyMonthly,
		TargetAmount: decimal.NewFromInt(10000),
		PayoutSize:   decimal.NewFromInt(3000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(uint(4), response.Data.PayoutsTotal, "a partial final payout still counts as a payout")
}

func (suite *TestSuiteStandard) TestCreatePlanValidation() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name     string
		editable v1.PlanEditable
		status   int
	}{
		{
			"target amount zero",
			v1.PlanEditable{AccountID: account.ID, Frequency: models.FrequencyWeekly, PayoutSize: decimal.NewFromInt(100)},
			http.StatusBadRequest,
		},
		{
			"payout size negative",
			v1.PlanEditable{AccountID: account.ID, Frequency: models.FrequencyWeekly, TargetAmount: decimal.NewFromInt(1000), PayoutSize: decimal.NewFromInt(-100)},
			http.StatusBadRequest,
		},
		{
			"payout above target",
			v1.PlanEditable{AccountID: account.ID, Frequency: models.FrequencyWeekly, TargetAmount: decimal.NewFromInt(1000), PayoutSize: decimal.NewFromInt(2000)},
			http.StatusBadRequest,
		},
		{
			"invalid frequency",
			v1.PlanEditable{AccountID: account.ID, Frequency: "Fortnightly", TargetAmount: decimal.NewFromInt(1000), PayoutSize: decimal.NewFromInt(100)},
			http.StatusBadRequest,
		},
		{
			"unknown account",
			v1.PlanEditable{AccountID: uuid.New(), Frequency: models.FrequencyWeekly, TargetAmount: decimal.NewFromInt(1000), PayoutSize: decimal.NewFromInt(100)},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller(), t, http.MethodPost, "/v1/plans", tt.editable)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGetPlans() {
	jane := suite.createTestAccount(models.Account{Email: "jane.doe@example.com"})
	john := suite.createTestAccount(models.Account{Email: "john.oke@example.com"})

	_ = suite.createTestPlan(models.SavingsPlan{AccountID: jane.ID, Name: "Rent", Frequency: models.FrequencyWeekly})
	_ = suite.createTestPlan(models.SavingsPlan{AccountID: jane.ID, Name: "School fees", Frequency: models.FrequencyMonthly})
	_ = suite.createTestPlan(models.SavingsPlan{AccountID: john.ID, Name: "Generator", Frequency: models.FrequencyWeekly})

	tests := []struct {
		query string
		count int
	}{
		{"", 3},
		{"?accountId=" + jane.ID.String(), 2},
		{"?frequency=Weekly", 2},
		{"?frequency=Monthly", 1},
		{"?active=false", 3},
		{"?active=true", 0},
		{"?name=rent", 1},
		{"?limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			recorder := test.Request(suite.controller(), t, http.MethodGet, "/v1/plans"+tt.query, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.PlanListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, tt.count, len(response.Data))
		})
	}
}

func (suite *TestSuiteStandard) TestGetPlansInvalidAccountID() {
	recorder := test.Request(suite.controller(), suite.T(), http.MethodGet, "/v1/plans?accountId=not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetPlan() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID, Name: "Rent"})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodGet, "/v1/plans/"+plan.Code, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(plan.Code, response.Data.Code)
	suite.Assert().Equal("Rent", response.Data.Name)
}

func (suite *TestSuiteStandard) TestGetPlanNotFound() {
	recorder := test.Request(suite.controller(), suite.T(), http.MethodGet, "/v1/plans/0000", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPlanOptions() {
	account := suite.createTestAccount(models.Account{})
	plan := suite.createTestPlan(models.SavingsPlan{AccountID: account.ID})

	recorder := test.Request(suite.controller(), suite.T(), http.MethodOptions, "/v1/plans", "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("GET, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.controller(), suite.T(), http.MethodOptions, "/v1/plans/"+plan.Code, "")
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("GET", recorder.Header().Get("allow"))
}
