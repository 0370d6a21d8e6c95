package v1

import (
	"net/http"
	"strings"

	"github.com/ajo-zero/backend/internal/httputil"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterPlanRoutes registers the routes for savings plans with
// the RouterGroup that is passed.
func (co Controller) RegisterPlanRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsPlanList)
		r.GET("", co.GetPlans)
		r.POST("", co.CreatePlan)
	}

	// Plan with code
	{
		r.OPTIONS("/:code", co.OptionsPlanDetail)
		r.GET("/:code", co.GetPlan)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Router			/v1/plans [options]
func (co Controller) OptionsPlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Failure		404	{object}	httpError
// @Param			code	path	string	true	"Code of the plan"
// @Router			/v1/plans/{code} [options]
func (co Controller) OptionsPlanDetail(c *gin.Context) {
	err := models.DB.Where(&models.SavingsPlan{Code: c.Param("code")}).First(&models.SavingsPlan{}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create savings plan
// @Description	Creates a new savings plan and allocates a code for it
// @Tags			Plans
// @Produce		json
// @Success		201		{object}	PlanResponse
// @Failure		400		{object}	PlanResponse
// @Failure		404		{object}	PlanResponse
// @Failure		409		{object}	PlanResponse
// @Failure		500		{object}	PlanResponse
// @Param			plan	body		PlanEditable	true	"Plan"
// @Router			/v1/plans [post]
func (co Controller) CreatePlan(c *gin.Context) {
	var editable PlanEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &s,
		})
		return
	}

	plan, err := models.CreateSavingsPlan(editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &s,
		})
		return
	}

	data := newPlan(c, plan)
	c.JSON(http.StatusCreated, PlanResponse{Data: &data})
}

// @Summary		Get savings plans
// @Description	Returns a list of savings plans
// @Tags			Plans
// @Produce		json
// @Success		200	{object}	PlanListResponse
// @Failure		400	{object}	PlanListResponse
// @Failure		500	{object}	PlanListResponse
// @Router			/v1/plans [get]
// @Param			accountId	query	string	false	"Filter by account ID"
// @Param			frequency	query	string	false	"Filter by payout frequency"
// @Param			active		query	bool	false	"Is the plan funded?"
// @Param			name		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Plan returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Plans to return. Defaults to 50."
func (co Controller) GetPlans(c *gin.Context) {
	var filter PlanQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("created_at ASC").
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "AccountID") {
		accountID, err := httputil.UUIDFromString(filter.AccountID)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PlanListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("account_id = ?", accountID)
	}

	if slices.Contains(setFields, "Name") {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Plans and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var plans []models.SavingsPlan
	err := q.Find(&plans).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Plan, 0)
	for _, plan := range plans {
		data = append(data, newPlan(c, plan))
	}

	c.JSON(http.StatusOK, PlanListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get savings plan
// @Description	Returns the savings plan with the given code
// @Tags			Plans
// @Produce		json
// @Success		200	{object}	PlanResponse
// @Failure		404	{object}	PlanResponse
// @Failure		500	{object}	PlanResponse
// @Param			code	path	string	true	"Code of the plan"
// @Router			/v1/plans/{code} [get]
func (co Controller) GetPlan(c *gin.Context) {
	var plan models.SavingsPlan
	err := models.DB.Where(&models.SavingsPlan{Code: c.Param("code")}).First(&plan).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &s,
		})
		return
	}

	data := newPlan(c, plan)
	c.JSON(http.StatusOK, PlanResponse{Data: &data})
}
