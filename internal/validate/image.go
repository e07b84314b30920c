package validate

import (
	"context"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

const imageCheckTimeout = 10 * time.Second

// imageTypes — типы содержимого, которые транспорт умеет отправлять как фото.
var imageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ImageChecker проверяет URL изображения GET-запросом с ограниченным таймаутом.
// Любая ошибка трактуется как "не изображение": фото просто не отправляется.
type ImageChecker struct {
	client *http.Client
	logger *log.Entry
}

// NewImageChecker возвращает проверку изображений с собственным HTTP-клиентом.
func NewImageChecker(logger *log.Entry) *ImageChecker {
	if logger == nil {
		logger = log.WithField("component", "image-checker")
	}
	return &ImageChecker{
		client: &http.Client{Timeout: imageCheckTimeout},
		logger: logger,
	}
}

// IsImage сообщает, отвечает ли URL изображением поддерживаемого типа.
func (c *ImageChecker) IsImage(ctx context.Context, url string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, imageCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Warn("image url check failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	_, ok := imageTypes[contentType]
	return ok
}

var _ domain.ImageChecker = (*ImageChecker)(nil)
