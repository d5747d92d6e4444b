package main

import (
	"os"

	"mealguard/config"
	"mealguard/routes"
	"mealguard/services"
)

func main() {
	config.LoadEnv()
	config.InitDB()

	advisor := services.NewAdvisorService()
	r := routes.SetupRouter(config.DB, advisor)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
