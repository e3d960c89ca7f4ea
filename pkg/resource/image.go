package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageConfig is the header of an image resource.
type ImageConfig struct {
	Format string
	Width  int
	Height int
}

// DecodeImageConfig reads the dimensions of PNG, JPEG, GIF, BMP or WebP data
// without decoding pixels.
func DecodeImageConfig(data []byte) (ImageConfig, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageConfig{}, fmt.Errorf("resource: image header: %w", err)
	}
	return ImageConfig{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
