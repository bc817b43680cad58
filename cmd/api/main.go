package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
