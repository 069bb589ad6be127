package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// StaticHandler serves the marketing site from root.
//
// Lookup order for GET /foo: root/foo, then root/foo.html, then the
// site's index.html with status 404. The pages are plain files; any
// path the site does not know still renders as the site, not as a bare
// error page.
func StaticHandler(root string) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqPath := c.Request().URL.Path

		fsPath, ok := resolve(root, reqPath)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid path")
		}

		for _, candidate := range []string{fsPath, fsPath + ".html"} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return c.File(candidate)
			}
		}

		index := filepath.Join(root, "index.html")
		content, err := os.ReadFile(index)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		return c.HTMLBlob(http.StatusNotFound, content)
	}
}

// resolve maps a request path into root, refusing anything that would
// escape it.
func resolve(root string, reqPath string) (string, bool) {
	cleaned := filepath.Clean("/" + strings.TrimPrefix(reqPath, "/"))
	if cleaned == "/" {
		cleaned = "/index.html"
	}

	fsPath := filepath.Join(root, cleaned)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(fsPath)
	if err != nil {
		return "", false
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", false
	}
	return fsPath, true
}
