package main

import (
	"roulette_casino/internal/app"
	"roulette_casino/pkg/logger"
)

func main() {
	a := app.NewApp()
	err := a.Run()
	if err != nil {
		logger.Fatal("failed to run app: %v", err)
	}
}
