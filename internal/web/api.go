package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rdhelms/deck-the-pockets/internal/game"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

type SnapshotSource interface {
	Snapshot() *game.Session
}

// Register mounts the health, game snapshot and share QR endpoints.
func Register(r gin.IRoutes, src SnapshotSource, publicURL string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	r.GET("/api/game", func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Snapshot())
	})

	r.GET("/qr.png", func(c *gin.Context) {
		png, err := qrcode.Encode(shareURL(c.Request, publicURL), qrcode.Medium, qrSize)
		if err != nil {
			log.Error().Err(err).Msg("qr generation failed")
			c.String(http.StatusInternalServerError, "qr generation failed")
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	})
}

// shareURL is the configured public URL, or the request's own origin
// (respecting TLS and X-Forwarded-Proto).
func shareURL(r *http.Request, publicURL string) string {
	if publicURL != "" {
		return publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(proto)
	}
	return scheme + "://" + r.Host + "/"
}
