package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"upkeep/clock"
	"upkeep/constants"
	"upkeep/services"
)

type SettingsController struct {
	Engine *services.Engine
}

// Only the workday window is operator-editable; the watermark keys belong to
// the sweeps.
var editableSettings = map[string]bool{
	constants.SettingWorkdayStartTime: true,
	constants.SettingWorkdayEndTime:   true,
}

func (sc *SettingsController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		constants.SettingWorkdayStartTime: sc.Engine.Setting(constants.SettingWorkdayStartTime, constants.DefaultWorkdayStartTime),
		constants.SettingWorkdayEndTime:   sc.Engine.Setting(constants.SettingWorkdayEndTime, constants.DefaultWorkdayEndTime),
	})
}

func (sc *SettingsController) Put(c *gin.Context) {
	key := c.Param("key")
	if !editableSettings[key] {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown setting"})
		return
	}

	var input struct {
		Value string `json:"value"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !clock.ValidTimeOfDay(input.Value) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value must be HH:MM"})
		return
	}

	if err := sc.Engine.UpsertSetting(key, input.Value); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{key: input.Value})
}
