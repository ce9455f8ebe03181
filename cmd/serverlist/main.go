package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ serverlist failed to start: %v", err)
	}
}
