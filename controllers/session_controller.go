package controllers

import (
	"errors"
	"log"
	"net/http"

	"mealguard/services"

	"github.com/gin-gonic/gin"
)

type CaptureInput struct {
	Image string `json:"image" binding:"required"`
}

type NavigateInput struct {
	View string `json:"view" binding:"required"`
}

// SessionController adapts the interaction layer to the web UI. The advisory
// client is only ever reached through the session, never from the CRUD
// handlers.
type SessionController struct {
	session *services.SessionService
}

func NewSessionController(session *services.SessionService) *SessionController {
	return &SessionController{session: session}
}

// GET /api/session
func (sc *SessionController) GetState(c *gin.Context) {
	resp := gin.H{"state": sc.session.State()}
	if entry := sc.session.LastEntry(); entry != nil {
		resp["result"] = logJSON(*entry)
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/navigate
func (sc *SessionController) Navigate(c *gin.Context) {
	var input NavigateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.session.Navigate(services.ViewState(input.View)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": sc.session.State()})
}

// POST /api/capture — runs the analysis flow. Advisory failures surface as a
// generic error with nothing persisted.
func (sc *SessionController) Capture(c *gin.Context) {
	var input CaptureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := sc.session.Capture(c.Request.Context(), input.Image)
	if err != nil {
		if errors.Is(err, services.ErrCaptureBusy) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "analysis already in progress"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not analyze this meal, please try again"})
		return
	}
	if outcome.Redirect {
		c.JSON(http.StatusOK, gin.H{"redirect": "profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"capture_id": outcome.CaptureID,
		"entry":      logJSON(*outcome.Entry),
	})
}

// POST /api/acknowledge — dismisses the result view.
func (sc *SessionController) Acknowledge(c *gin.Context) {
	sc.session.Acknowledge()
	c.JSON(http.StatusOK, gin.H{"success": true, "state": sc.session.State()})
}

// GET /api/recommendation — best-effort: any advisory failure is logged and
// answered with an empty object so the UI just omits the text.
func (sc *SessionController) Recommendation(c *gin.Context) {
	rec, err := sc.session.Recommendation(c.Request.Context())
	if err != nil {
		log.Printf("daily recommendation unavailable: %v", err)
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	if rec == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}
