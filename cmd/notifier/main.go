package main

import (
	"log"

	"artha-pay/internal/app"
)

func main() {
	notifier, err := app.NewNotifier()
	if err != nil {
		log.Fatalf("не удалось создать приложение: %v", err)
	}

	if err := notifier.Run(); err != nil {
		log.Fatalf("ошибка при запуске приложения: %v", err)
	}
}
