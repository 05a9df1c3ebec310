package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"upkeep/models"
)

// EntitiesController serves read-only lookups for the reference entities
// tasks point at. Their full lifecycle is managed elsewhere.
type EntitiesController struct {
	DB *gorm.DB
}

func (ec *EntitiesController) ListEmployees(c *gin.Context) {
	var employees []models.Employee
	ec.DB.Order("name").Find(&employees)
	c.JSON(http.StatusOK, employees)
}

func (ec *EntitiesController) GetEmployee(c *gin.Context) {
	var employee models.Employee
	if err := ec.DB.First(&employee, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (ec *EntitiesController) ListSystems(c *gin.Context) {
	var systems []models.System
	ec.DB.Order("name").Find(&systems)
	c.JSON(http.StatusOK, systems)
}

func (ec *EntitiesController) GetSystem(c *gin.Context) {
	var system models.System
	if err := ec.DB.First(&system, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "System not found"})
		return
	}
	c.JSON(http.StatusOK, system)
}

func (ec *EntitiesController) ListLocations(c *gin.Context) {
	var locations []models.Location
	ec.DB.Preload("Building").Order("name").Find(&locations)
	c.JSON(http.StatusOK, locations)
}

func (ec *EntitiesController) GetLocation(c *gin.Context) {
	var location models.Location
	if err := ec.DB.Preload("Building").First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

func (ec *EntitiesController) ListBuildings(c *gin.Context) {
	var buildings []models.Building
	ec.DB.Order("name").Find(&buildings)
	c.JSON(http.StatusOK, buildings)
}

func (ec *EntitiesController) GetBuilding(c *gin.Context) {
	var building models.Building
	if err := ec.DB.First(&building, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}
	c.JSON(http.StatusOK, building)
}
