// Package web serves the single-page UI that drives the JSON API.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var static embed.FS

// Register serves the embedded UI from /.
func Register(app *fiber.App) error {
	root, err := fs.Sub(static, "static")
	if err != nil {
		return err
	}

	app.Use("/", filesystem.New(filesystem.Config{
		Root:   http.FS(root),
		Index:  "index.html",
		Browse: false,
	}))
	return nil
}
