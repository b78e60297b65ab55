package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/mostafakamar/hafla-store/internal/infrastructure/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
