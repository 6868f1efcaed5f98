package util

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"complaint-desk/pkg/apierror"
)

// MaxPhotoDimension bounds each side of an uploaded photo in pixels.
const MaxPhotoDimension = 8192

func IsImageExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".png", ".jpg", ".jpeg", ".jpe", ".jfif", ".gif", ".webp", ".bmp", ".tiff", ".tif":
		return true
	default:
		return false
	}
}

// NormalizePhotoExtension returns the extension with a leading dot, lower-cased,
// or an error when it does not name an image format.
func NormalizePhotoExtension(extension string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(extension))
	if cleaned == "" {
		return "", apierror.Validation(map[string]string{"photo_extension": "is required"})
	}
	if !strings.HasPrefix(cleaned, ".") {
		cleaned = "." + cleaned
	}
	if !IsImageExtension(cleaned) {
		return "", apierror.Validation(map[string]string{"photo_extension": "must be an image extension"})
	}
	return cleaned, nil
}

// PhotoContentType decodes the payload header with CheckPhoto and names the
// media type of the format it decoded as.
func PhotoContentType(data []byte) (string, error) {
	_, format, err := CheckPhoto(data)
	if err != nil {
		return "", err
	}
	return "image/" + format, nil
}

// CheckPhoto decodes the image header and rejects payloads that do not parse
// as a registered format or exceed MaxPhotoDimension on either side.
func CheckPhoto(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", apierror.Validation(map[string]string{"photo": "is not a readable image"})
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxPhotoDimension || cfg.Height > MaxPhotoDimension {
		return image.Config{}, "", apierror.Validation(map[string]string{"photo": "image dimensions are out of range"})
	}
	return cfg, format, nil
}
