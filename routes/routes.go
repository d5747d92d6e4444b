package routes

import (
	"net/http"

	"mealguard/controllers"
	"mealguard/services"
	"mealguard/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, advisor services.Advisor) *gin.Engine {
	profiles := services.NewProfileService(db)
	logs := services.NewLogService(db)
	session := services.NewSessionService(profiles, logs, advisor)

	pc := controllers.NewProfileController(profiles)
	lc := controllers.NewLogController(logs)
	sc := controllers.NewSessionController(session)

	r := gin.Default()
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.GET("/profile", pc.GetProfile)
		api.POST("/profile", pc.SaveProfile)
		api.GET("/logs", lc.ListLogs)
		api.POST("/logs", lc.CreateLog)

		api.GET("/session", sc.GetState)
		api.POST("/navigate", sc.Navigate)
		api.POST("/capture", sc.Capture)
		api.POST("/acknowledge", sc.Acknowledge)
		api.GET("/recommendation", sc.Recommendation)
	}

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})

	return r
}
