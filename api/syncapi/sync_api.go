package syncapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"libas.GO/api"
	itemApi "libas.GO/api/item"
	"libas.GO/config"
	"libas.GO/core/fault"
	itemRepo "libas.GO/model/repository/item"
	syncrunRepo "libas.GO/model/repository/syncrun"
	syncService "libas.GO/service/sync"
)

func init() {
	api.RegisterRoute(RegisterSyncRoutes)
}

func RegisterSyncRoutes(e *echo.Echo, db *gorm.DB) {
	items := itemRepo.NewItemRepository(db)
	runs := syncrunRepo.NewSyncRunRepository(db)
	extractor := syncService.NewBusyExtractor(config.BusyConfigFromEnv())
	svc := syncService.NewService(extractor, items, runs,
		config.AppConfig.CachePath, config.AppConfig.AllowSync)
	RegisterSyncRoutesWith(e, svc)
}

// RegisterSyncRoutesWith wires the handler against an explicit orchestrator
// (tests inject a fake extractor through here).
func RegisterSyncRoutesWith(e *echo.Echo, svc *syncService.Service) {
	// POST /sync — run one full extract/replace cycle
	e.POST("/sync", func(c echo.Context) error {
		res, err := svc.Sync(c.Request().Context())
		if err != nil {
			switch {
			case errors.Is(err, syncService.ErrDisabled):
				return c.JSON(http.StatusForbidden, echo.Map{"ok": false, "error": err.Error()})
			case fault.IsKind(err, fault.Busy):
				return c.JSON(http.StatusConflict, echo.Map{"ok": false, "error": err.Error()})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"ok":    false,
					"error": err.Error(),
					"kind":  string(fault.KindOf(err)),
				})
			}
		}

		itemApi.InvalidateSearchCache()
		return c.JSON(http.StatusOK, echo.Map{
			"ok":          true,
			"rows":        res.Rows,
			"saved_to":    res.SavedTo,
			"duration_ms": res.Duration.Milliseconds(),
		})
	})
}
