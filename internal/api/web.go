package api

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Embedded status page: a single index.html linking to the live endpoints
// and Swagger UI.
//
//go:embed web/*
var embeddedWeb embed.FS

func getEmbedFS() static.ServeFileSystem {
	fs, err := static.EmbedFolder(embeddedWeb, "web")
	if err != nil {
		panic("failed to get embedded web filesystem: " + err.Error())
	}
	return fs
}

// mountStatusPage serves the embedded status page at "/", leaving every
// "/api" and "/swagger" route untouched.
func mountStatusPage(r *gin.Engine, logger *slog.Logger) {
	distFS := getEmbedFS()
	r.Use(static.Serve("/", distFS))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.RequestURI, "/api") || strings.HasPrefix(c.Request.RequestURI, "/swagger") {
			return
		}
		index, err := distFS.Open("index.html")
		if err != nil {
			logger.Error("failed to open index.html", "error", err)
			return
		}
		defer index.Close()
		stat, statErr := index.Stat()
		if statErr != nil {
			return
		}
		http.ServeContent(c.Writer, c.Request, "index.html", stat.ModTime(), index)
	})
}
