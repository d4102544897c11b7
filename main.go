package main

import (
	"context"
	"log"
	"os"

	"it_asset_manager/app"
	"it_asset_manager/controllers"
	"it_asset_manager/routes"
)

func main() {
	application := app.MustNew()
	defer application.Close()

	// 空库时种一个默认管理员
	s := controllers.GetSrv(application)
	app.BootstrapDefaultAdmin(context.Background(), application, s.Auth)

	r := application.Router
	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
