package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"dealdesk/config"
	"dealdesk/db"
	"dealdesk/router"
	"dealdesk/tools"
	"dealdesk/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg := config.Get(configPath)
	setupLogFile(cfg.LogPath)

	db.SetConfigurations(cfg)
	tools.SetMailConfig(tools.APIMailer{
		ApiURL: cfg.Mail.ApiURL,
		ApiKey: cfg.Mail.ApiKey,
		From:   cfg.Mail.From,
		DryRun: cfg.Mail.DryRun,
	})
	tools.SetNotifyConfig(tools.WebhookNotifier{
		WebhookURL: cfg.Notifications.WebhookURL,
		DryRun:     cfg.Notifications.DryRun,
	})

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer database.Close()

	workers.StartOverdueSweeper(database, 1*time.Minute)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, cfg)

	log.Printf("dealdesk listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatal(err)
	}
}

// setupLogFile mirrors log output to the configured file, keeping stdout.
func setupLogFile(path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("log path %s: %v", path, err)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("log file %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
}
