package upload

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrNotAnImage = errors.New("only image files are allowed")
	ErrTooLarge   = errors.New("file exceeds the maximum upload size")
)

// Saver stores uploaded images under a public directory. Stored files are
// never deleted when later request validation fails; orphans are accepted.
type Saver struct {
	dir     string
	maxSize int64
}

func NewSaver(dir string, maxSize int64) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Saver{dir: dir, maxSize: maxSize}, nil
}

// Save writes the multipart file under a fresh uuid filename and returns
// the public path it will be served from ("/public/<name>").
func (s *Saver) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(s.dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Log.Error("Failed to store uploaded image",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("Image stored",
		zap.String("path", dst),
		zap.Int64("size", file.Size),
	)

	return "/public/" + name, nil
}
