package main

import (
	"github.com/Dosada05/esports-hub/app"
	"go.uber.org/fx"
)

// @title Esports Hub API
// @version 1.0
// @description API платформы e-sports турниров: команды, заявки, оплата PIX.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	fx.New(
		app.Module,
		fx.NopLogger,
		fx.Invoke(app.RunServer),
		fx.Invoke(app.RunWorkers),
	).Run()
}
