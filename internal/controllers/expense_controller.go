package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lpz8/Backend-splitwise-back/internal/models"
	"github.com/lpz8/Backend-splitwise-back/internal/repository"
	"github.com/lpz8/Backend-splitwise-back/internal/service"
)

type ExpenseController struct {
	expenseService service.ExpenseService
}

func NewExpenseController(expenseService service.ExpenseService) *ExpenseController {
	return &ExpenseController{expenseService: expenseService}
}

// ListExpenses handles GET /expenses - newest first, references resolved
func (ec *ExpenseController) ListExpenses(c *gin.Context) {
	expenses, err := ec.expenseService.ListExpenses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense handles GET /expenses/:id
func (ec *ExpenseController) GetExpense(c *gin.Context) {
	id, ok := expenseID(c)
	if !ok {
		return
	}

	expense, err := ec.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense handles POST /expenses
func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing data",
		})
		return
	}

	expense, err := ec.expenseService.CreateExpense(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense handles PUT /expenses/:id - any subset of fields may be supplied
func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	id, ok := expenseID(c)
	if !ok {
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	expense, err := ec.expenseService.UpdateExpense(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles DELETE /expenses/:id
func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	id, ok := expenseID(c)
	if !ok {
		return
	}

	if err := ec.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
	})
}

// expenseID validates the :id path parameter. A malformed identifier is a
// 400 "invalid id", distinct from the 404 a well-formed unknown one yields.
func expenseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid id",
		})
		return "", false
	}
	return id, true
}

// respondError maps service errors onto the HTTP taxonomy: not-found is 404,
// everything else (validation, constraint and driver failures) is 400 with
// the underlying message.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}
