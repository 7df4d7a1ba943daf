package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type Config struct {
	ServerPort         string `json:"server_port"`
	DatabasePath       string `json:"database_path"`
	JWTSecret          string `json:"jwt_secret"`
	Production         bool   `json:"production"`
	FrontendURL        string `json:"frontend_url"`
	CookieDomain       string `json:"cookie_domain"`
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	GoogleRedirectURI  string `json:"google_redirect_uri"`
}

var (
	instance *Config
	once     sync.Once
)

func generateSecret(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)
}

func getConfigPath() string {
	configDir := os.Getenv("KEEPER_CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			configDir = "."
		} else {
			configDir = filepath.Join(homeDir, ".keeper")
		}
	}
	return filepath.Join(configDir, "config.json")
}

func GetConfig() *Config {
	once.Do(func() {
		instance = &Config{
			ServerPort:  "8080",
			FrontendURL: "http://localhost:5173",
		}

		configPath := getConfigPath()

		// Try to load existing config
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, instance); err != nil {
				// Config file is corrupted, will use defaults
			}
		}

		// Generate secrets if not set
		needsSave := false
		if instance.JWTSecret == "" {
			instance.JWTSecret = generateSecret(32)
			needsSave = true
		}
		if instance.DatabasePath == "" {
			configDir := filepath.Dir(configPath)
			instance.DatabasePath = filepath.Join(configDir, "keeper.db")
			needsSave = true
		}

		// Override with environment variables
		if port := os.Getenv("KEEPER_PORT"); port != "" {
			instance.ServerPort = port
		}
		if dbPath := os.Getenv("KEEPER_DB_PATH"); dbPath != "" {
			instance.DatabasePath = dbPath
		}
		if os.Getenv("KEEPER_PRODUCTION") == "true" {
			instance.Production = true
		}
		if v := os.Getenv("KEEPER_FRONTEND_URL"); v != "" {
			instance.FrontendURL = v
		}
		if v := os.Getenv("KEEPER_GOOGLE_CLIENT_ID"); v != "" {
			instance.GoogleClientID = v
		}
		if v := os.Getenv("KEEPER_GOOGLE_CLIENT_SECRET"); v != "" {
			instance.GoogleClientSecret = v
		}
		if v := os.Getenv("KEEPER_GOOGLE_REDIRECT_URI"); v != "" {
			instance.GoogleRedirectURI = v
		}

		// Save config if we generated new secrets
		if needsSave {
			instance.Save()
		}
	})

	return instance
}

func (c *Config) Save() error {
	configPath := getConfigPath()

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}
