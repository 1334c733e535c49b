package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

func FileExists(path string) bool {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return true
	}
	return false
}

func WriteBytes(data []byte, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	if err != nil {
		return err
	}

	return nil
}

// LoadImage decodes a PNG or BMP file.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(file)
	case ".bmp":
		return bmp.Decode(file)
	}

	return nil, fmt.Errorf("unsupported image type %s", filepath.Ext(path))
}

// SaveImage encodes img as PNG or BMP depending on the extension of path.
func SaveImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(out, img)
	case ".bmp":
		err = bmp.Encode(out, img)
	default:
		err = fmt.Errorf("unsupported image type %s", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	return out.Close()
}
