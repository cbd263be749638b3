package productcontroller

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurilloh-an/telegram-mini-app/config"
)

// saveUploadedImage stores a multipart image under <media root>/<subdir>
// with a collision-free name and returns the public URL it is served from.
func saveUploadedImage(c *gin.Context, cfg *config.Config, file *multipart.FileHeader, subdir string) (string, error) {
	saveDir := filepath.Join(cfg.MediaRoot, subdir)
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", cfg.MediaURL, subdir, filename), nil
}
