package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Ajeyanth/SafeServeBackend/internal/config"
)

// QRHandler renders QR codes that link to a restaurant's public menu page.
type QRHandler struct {
	Cfg config.Config
}

func NewQRHandler(cfg config.Config) *QRHandler {
	return &QRHandler{Cfg: cfg}
}

// MenuURL builds the public menu URL encoded into the QR code. The base
// comes from configuration so deployments control the front-end host.
func (h *QRHandler) MenuURL(restaurantID uint64) string {
	return fmt.Sprintf("%s/restaurant/%d/menu", strings.TrimRight(h.Cfg.QRBaseURL, "/"), restaurantID)
}

// GenerateQR handles GET /v1/restaurants/:restaurant_id/generate-qr for
// authenticated callers. The response body is the PNG image itself.
func (h *QRHandler) GenerateQR(c echo.Context) error {
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	png, err := qrcode.Encode(h.MenuURL(restaurantID), qrcode.Low, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "qr generation failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
