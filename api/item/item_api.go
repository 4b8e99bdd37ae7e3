package item

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"libas.GO/api"
	"libas.GO/config"
	"libas.GO/core/cache"
	itemRepo "libas.GO/model/repository/item"
	"libas.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterItemRoutes)
}

const (
	searchTag = "search"
	searchTTL = 30 // seconds; bounded staleness between syncs
)

func RegisterItemRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := itemRepo.NewItemRepository(db)

	// GET /api/search?q=<text>&group=<name> — public, always 200
	apiGroup.GET("/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		group := c.QueryParam("group")
		key := searchTag + "|" + strings.ToLower(q) + "|" + group

		if body, ok := cachedSearch(key); ok {
			return c.JSONBlob(http.StatusOK, body)
		}

		items, err := repo.All()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		matches := catalog.Search(items, q, group)

		body, err := json.Marshal(echo.Map{"items": matches})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		storeSearch(key, body)
		return c.JSONBlob(http.StatusOK, body)
	})
}

func cachedSearch(key string) ([]byte, bool) {
	if config.RedisClient != nil {
		body, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes()
		if err == nil {
			return body, true
		}
		return nil, false
	}
	if v, ok := cache.GetInstance().Get(key); ok {
		if body, isBytes := v.([]byte); isBytes {
			return body, true
		}
	}
	return nil, false
}

func storeSearch(key string, body []byte) {
	if config.RedisClient != nil {
		ctx := config.RedisCtx()
		config.RedisClient.Set(ctx, key, body, searchTTL*time.Second)
		config.RedisClient.SAdd(ctx, "tag:"+searchTag, key)
		return
	}
	cache.GetInstance().Set(key, body, searchTTL, []string{searchTag})
}

// InvalidateSearchCache drops every cached search response. Called after a
// successful sync and after an image upsert.
func InvalidateSearchCache() {
	cache.GetInstance().InvalidateTag(searchTag)
	if config.RedisClient != nil {
		ctx := config.RedisCtx()
		keys, err := config.RedisClient.SMembers(ctx, "tag:"+searchTag).Result()
		if err == nil && len(keys) > 0 {
			config.RedisClient.Del(ctx, keys...)
		}
		config.RedisClient.Del(ctx, "tag:"+searchTag)
	}
}
