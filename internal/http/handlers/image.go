package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"rns-image/internal/infra/logging"
	"rns-image/internal/metrics"
)

// Renderer produces the PNG for a requested name.
type Renderer interface {
	Compose(name string) ([]byte, error)
}

// ImageService serves rendered name cards.
type ImageService struct {
	Renderer Renderer
}

// NewImageService creates a new ImageService instance.
func NewImageService(r Renderer) *ImageService {
	return &ImageService{Renderer: r}
}

// HandleImage renders the :name path parameter. An empty name renders the
// bare suffix.
func (svc *ImageService) HandleImage(c *fiber.Ctx) error {
	requestID := c.GetRespHeader(fiber.HeaderXRequestID)

	// The param is still escaped so an encoded "/" stays inside one segment.
	raw := c.Params("name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		logging.Warn("Invalid name escape", "name", utils.CopyString(raw), "request_id", requestID)
		return fiber.NewError(fiber.StatusBadRequest, "Invalid name: malformed percent-encoding")
	}
	// Params point into the request buffer and PathUnescape may return its input as is.
	name = utils.CopyString(name)

	start := time.Now()
	buf, err := svc.Renderer.Compose(name)
	metrics.RenderDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RendersTotal.WithLabelValues("error").Inc()
		logging.Error("Image render failed", "name", name, "request_id", requestID, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Image rendering failed")
	}

	metrics.RendersTotal.WithLabelValues("ok").Inc()
	metrics.PNGBytes.Observe(float64(len(buf)))
	logging.Debug("Image rendered", "name", name, "bytes", len(buf), "request_id", requestID)

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf)
}
