package main

import (
	"log"
	"os"

	"ImageVault/Config"
	"ImageVault/CronJobs"
	"ImageVault/FiberConfig"
	"ImageVault/Models"
	"ImageVault/email"
)

func main() {
	setupLogging()
	Config.Load()

	Models.Connect()

	mailer := email.NewSender(Models.LoadEmailConfig())

	scheduler := CronJobs.NewScheduler(Models.DB, mailer)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start background scheduler: %v", err)
	}
	defer scheduler.Stop()

	FiberConfig.Serve(Models.DB, mailer)
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	// Set up main application log file
	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
