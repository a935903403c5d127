package main

import (
	"log"

	_ "artha-pay/docs"
	"artha-pay/internal/app"
)

// @title           Artha Pay API
// @version         1.0
// @description     UPI-платежи с поведенческой оценкой риска: журнал сумм, isolation forest, алерты в kafka

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("Ошибка создания приложения: %v", err)
	}

	app.BuildAuthLayer()
	if err := app.BuildRiskLayer(); err != nil {
		log.Fatalf("Ошибка сборки слоя risk: %v", err)
	}
	if err := app.BuildPaymentLayer(); err != nil {
		log.Fatalf("Ошибка сборки слоя payments: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Ошибка при работе приложения: %v", err)
	}
}
