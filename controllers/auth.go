package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"upkeep/config"
	"upkeep/utils"
)

type AuthController struct {
	Cfg *config.Config
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ac.Cfg.AdminPasswordHash == "" ||
		!utils.CheckPassword(input.Password, ac.Cfg.AdminPasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT([]byte(ac.Cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
