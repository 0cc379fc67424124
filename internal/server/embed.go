package server

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/vesaa/greeter/internal/static"
	"github.com/vesaa/greeter/webui"
)

// EmbeddedFrontend returns the frontend compiled into the binary.
func EmbeddedFrontend() static.Source {
	sub, err := fs.Sub(webui.FS, "web")
	if err != nil {
		panic("embed: web sub-fs failed: " + err.Error())
	}
	return static.NewFS(sub, "embedded:webui/web")
}

// RegisterStaticFiles mounts src under /frontend/. Directories are never
// listed and names escaping the root are answered with 404, the same as a
// missing file.
func RegisterStaticFiles(r *gin.Engine, src static.Source) {
	if !static.Available(src) {
		log.Printf("[static] frontend root %s is not available; /frontend/* will return 404", src)
	}

	h := serveFrontend(src)
	r.GET("/frontend/*filepath", h)
	r.HEAD("/frontend/*filepath", h)
}

func serveFrontend(src static.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filepath")

		f, err := src.Open(name)
		if err != nil {
			staticError(c, name, err)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			staticError(c, name, err)
			return
		}
		if info.IsDir() {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}

		// ServeContent sets Content-Type from the extension and handles
		// Range / If-Modified-Since.
		if rs, ok := f.(io.ReadSeeker); ok {
			http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), rs)
			return
		}
		c.DataFromReader(http.StatusOK, info.Size(), contentType(info.Name()), f, nil)
	}
}

func staticError(c *gin.Context, name string, err error) {
	switch {
	case errors.Is(err, static.ErrOutsideRoot):
		log.Printf("[static] rejected %q from %s: %v", name, c.ClientIP(), err)
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, fs.ErrNotExist):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, fs.ErrPermission):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.Printf("[static] open %q: %v", name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
	}
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
