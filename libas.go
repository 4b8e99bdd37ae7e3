//go:build !cli
// +build !cli

package main

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"libas.GO/api"
	_ "libas.GO/api/image"
	_ "libas.GO/api/item"
	_ "libas.GO/api/syncapi"
	"libas.GO/config"
	"libas.GO/core/auth"
	_ "libas.GO/custom"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching in-memory."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching in-memory."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewCacheDB(config.AppConfig.CachePath)
	if err != nil {
		log.Fatalf("failed to open cache DB: %v", err)
	}
	log.Printf("Cache database ready at %s", config.AppConfig.CachePath)
	if config.AppConfig.AllowSync {
		log.Println("Sync capability enabled (ALLOW_SYNC=1)")
	} else {
		log.Println("Sync capability disabled; POST /sync returns 403")
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	// PWA shell passthrough (front end is a static collaborator)
	if _, statErr := os.Stat("static"); statErr == nil {
		e.Static("/static", "static")
		if _, idxErr := os.Stat("static/index.html"); idxErr == nil {
			e.GET("/", func(c echo.Context) error {
				return c.File("static/index.html")
			})
		}
	}

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())

	api.ApplyModules(apiGroup, db)
	api.ApplyRoutes(e, db)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "slant", "standard", "small", "shadow", "doom", "larry3d"}
	fig := figure.NewFigure("Libas ->", fonts[rand.Intn(len(fonts))], true)
	fig.Print()

	port := config.AppConfig.Port
	if port == "" {
		port = "5000"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
