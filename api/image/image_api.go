package image

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"libas.GO/api"
	itemApi "libas.GO/api/item"
	"libas.GO/core/fault"
	"libas.GO/core/ghub"
	itemRepo "libas.GO/model/repository/item"
	imageService "libas.GO/service/image"
)

func init() {
	api.RegisterModule(RegisterImageRoutes)
}

func RegisterImageRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := itemRepo.NewItemRepository(db)
	svc := imageService.NewService(repo, ghub.NewFromEnv())
	RegisterImageRoutesWith(apiGroup, svc)
}

// RegisterImageRoutesWith wires the handler against an explicit service
// (tests inject a fake uploader through here).
func RegisterImageRoutesWith(apiGroup *echo.Group, svc *imageService.Service) {
	// POST /api/upload_image — multipart fields: code, file
	apiGroup.POST("/upload_image", func(c echo.Context) error {
		code := c.FormValue("code")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "code field is required"})
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "file field is required"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": err.Error()})
		}
		defer src.Close()

		url, err := svc.AttachImage(c.Request().Context(), code, src)
		if err != nil {
			body := echo.Map{"ok": false, "error": err.Error()}
			if fault.IsKind(err, fault.Storage) {
				// the remote asset exists; only the cache write failed
				body["url"] = url
			}
			return c.JSON(http.StatusInternalServerError, body)
		}

		itemApi.InvalidateSearchCache()
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "code": code, "url": url})
	})
}
