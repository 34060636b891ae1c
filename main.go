package main

import (
	"github.com/joho/godotenv"

	"txrollup/cmd"
)

func main() {
	// Optional .env for path overrides; missing file is fine.
	_ = godotenv.Load()

	cmd.Execute()
}
