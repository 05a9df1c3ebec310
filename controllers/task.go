package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"upkeep/services"
)

type TaskController struct {
	Engine *services.Engine
}

// operatorActor labels audit rows written through the management API.
const operatorActor = "operator"

func (tc *TaskController) CreateTask(c *gin.Context) {
	var input services.TaskInput

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := tc.Engine.CreateTask(input)
	if err != nil {
		respondError(c, err)
		return
	}

	// The first occurrence represents the whole fan-out.
	c.JSON(http.StatusCreated, gin.H{
		"task":          tasks[0],
		"created_count": len(tasks),
	})
}

func (tc *TaskController) GetTasks(c *gin.Context) {
	filter := services.TaskFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}
	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee_id"})
			return
		}
		filter.EmployeeID = uint(id)
	}
	if v := c.Query("starred"); v != "" {
		starred := v == "true" || v == "1"
		filter.Starred = &starred
	}

	tasks, err := tc.Engine.ListTasks(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) GetTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	task, err := tc.Engine.GetTask(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input services.TaskInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tc.Engine.UpdateTask(id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) SetStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tc.Engine.SetStatus(id, input.Status, input.Note, operatorActor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	task, err := tc.Engine.Approve(id, operatorActor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) Star(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		Starred bool `json:"starred"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tc.Engine.SetStarred(id, input.Starred)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := tc.Engine.DeleteTask(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
