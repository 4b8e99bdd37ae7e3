package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName   string
	Port      string
	Env       string
	Debug     bool
	AllowSync bool   // capability flag: Busy extraction enabled for this deploy
	CachePath string // sqlite cache database file
	JSONPath  string // local snapshot written before publishing
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		cachePath := os.Getenv("CACHE_PATH")
		if cachePath == "" {
			cachePath = "cache.db"
		}
		jsonPath := os.Getenv("ITEMS_JSON_PATH")
		if jsonPath == "" {
			jsonPath = "items.json"
		}
		AppConfig = &Config{
			AppName:   os.Getenv("APP_NAME"),
			Port:      os.Getenv("PORT"),
			Env:       os.Getenv("APP_ENV"),
			Debug:     os.Getenv("DEBUG") == "true",
			AllowSync: os.Getenv("ALLOW_SYNC") == "1",
			CachePath: cachePath,
			JSONPath:  jsonPath,
		}
	})
}
