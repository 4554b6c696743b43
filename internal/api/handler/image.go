package handler

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	_ "golang.org/x/image/webp"

	"github.com/campus-ease/presence/internal/domain"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// readFormImage reads one uploaded file and verifies it decodes as an
// actual image (jpeg, png or webp), not just that the client claims so
func readFormImage(c *fiber.Ctx, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	return readImageFile(file)
}

func readImageFile(file *multipart.FileHeader) ([]byte, error) {
	if file.Size == 0 || file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	if err := validateImageBytes(data); err != nil {
		return nil, err
	}

	return data, nil
}

func validateImageBytes(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return domain.ErrInvalidImage.WithError(err)
	}
	return nil
}
