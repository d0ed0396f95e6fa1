package main

import (
	"log"

	"github.com/fisker/webdb-console/internal/app"
)

func main() {
	// Initialize application
	application, err := app.Initialize("")
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Start server
	app.StartServer(application)
}
