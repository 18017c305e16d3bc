package handlers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/config"
	"github.com/crowdbase-dev/crowdbase/internal/domain"
)

var allowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

type ImageHandler struct {
	repos *domain.Repos
	cfg   *config.Config
}

func NewImageHandler(repos *domain.Repos, cfg *config.Config) *ImageHandler {
	return &ImageHandler{repos: repos, cfg: cfg}
}

func (h *ImageHandler) List(c *fiber.Ctx) error {
	images, err := h.repos.Images.List(c.Context(), bearerToken(c), domain.ImageListOptions{
		Sort: parseSort(c),
	})
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(images))
	for _, img := range images {
		out = append(out, img.Data(true))
	}
	return c.JSON(fiber.Map{"images": out})
}

func (h *ImageHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	image, err := h.repos.Images.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"image": image.Data(true)})
}

// Upload ingests a multipart file, records the image through the gate, and
// writes the binary under the upload directory keyed by the new id.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apperror.NewUpload("missing file field", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !lo.Contains(allowedExtensions, ext) {
		return apperror.NewValidation(apperror.CodeExtensionInvalid)
	}

	image, err := h.repos.Images.Create(c.Context(), bearerToken(c), domain.ImageValues{
		Extension: ext,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return apperror.NewUpload("upload directory unavailable", err)
	}
	dest := filepath.Join(h.cfg.UploadDir, image.FileName())
	if err := c.SaveFile(file, dest); err != nil {
		// The record without its binary is useless; roll it back.
		_ = h.repos.Images.Delete(c.Context(), bearerToken(c), image.ID())
		return apperror.NewUpload("failed to store file", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image": image.Data(true)})
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	image, err := h.repos.Images.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	if err := h.repos.Images.Delete(c.Context(), bearerToken(c), id); err != nil {
		return err
	}
	_ = os.Remove(filepath.Join(h.cfg.UploadDir, image.FileName()))
	return c.SendStatus(fiber.StatusNoContent)
}
