package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Mail struct {
		ApiURL string `json:"api_url"`
		ApiKey string `json:"api_key"`
		From   string `json:"from"`
		DryRun bool   `json:"dry_run"`
	} `json:"mail"`

	Notifications struct {
		WebhookURL string `json:"webhook_url"`
		DryRun     bool   `json:"dry_run"`
	} `json:"notifications"`

	Security struct {
		JwtSecret     string `json:"jwt_secret"`
		AccessCodeLen int    `json:"access_code_len"`
	} `json:"security"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.AccessCodeLen <= 0 {
		c.Security.AccessCodeLen = 8
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}

	return c
}
