package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"upkeep/services"
)

type SweepController struct {
	Engine *services.Engine
}

// RunAutoClose triggers the sweep on demand. The engine's watermark makes
// this safe to call any number of times.
func (sw *SweepController) RunAutoClose(c *gin.Context) {
	res, err := sw.Engine.RunAutoClose(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
