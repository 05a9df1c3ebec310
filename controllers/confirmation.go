package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"upkeep/services"
)

type ConfirmationController struct {
	Engine *services.Engine
}

// Issue is an operator endpoint; the other handlers here are the
// unauthenticated confirmation-link surface.
func (cc *ConfirmationController) Issue(c *gin.Context) {
	var input struct {
		EmployeeID uint   `json:"employee_id"`
		TaskIDs    []uint `json:"task_ids"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conf, err := cc.Engine.IssueConfirmation(input.EmployeeID, input.TaskIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      conf.Token,
		"expires_at": conf.ExpiresAt,
	})
}

func (cc *ConfirmationController) Resolve(c *gin.Context) {
	view, err := cc.Engine.ResolveConfirmation(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (cc *ConfirmationController) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := cc.Engine.UpdateConfirmedTask(c.Param("token"), uint(taskID), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (cc *ConfirmationController) Acknowledge(c *gin.Context) {
	if err := cc.Engine.AcknowledgeConfirmation(c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Acknowledged"})
}
