package controllers

import (
	"net/http"

	"mealguard/services"

	"github.com/gin-gonic/gin"
)

type ProfileInput struct {
	Age       int    `json:"age" binding:"required"`
	Condition string `json:"condition" binding:"required"`
}

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// GET /api/profile — absent profile answers an empty object, not an error.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, ok, err := pc.profiles.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"age":       profile.Age,
		"condition": profile.Condition,
	})
}

// POST /api/profile — upserts the singleton.
func (pc *ProfileController) SaveProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.profiles.Save(input.Age, input.Condition); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
