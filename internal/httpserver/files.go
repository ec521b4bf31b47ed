package httpserver

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dkirsanov/inventorypro/internal/logging"
	"github.com/dkirsanov/inventorypro/internal/storage"
)

type FilesHTTP struct {
	Disk storage.Disk
}

// Upload stores a multipart file under a random key and returns its public
// URL. The original filename only contributes the extension.
func (h *FilesHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "files.upload")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("upload_error", "status", 400, "reason", "missing file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fh.Open()
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}
	defer src.Close()

	key := uuid.NewString() + filepath.Ext(fh.Filename)
	if err := h.Disk.Put(ctx, key, src); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	l.Info("upload_success", "key", key, "size", fh.Size)
	return c.JSON(http.StatusCreated, echo.Map{"url": h.Disk.URL(key)})
}
