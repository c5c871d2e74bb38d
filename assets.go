package billow

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Assets is the sprite image registry templates are resolved against.
type Assets struct {
	images map[string]*ebiten.Image
}

// NewAssets creates an empty registry.
func NewAssets() *Assets {
	return &Assets{images: make(map[string]*ebiten.Image)}
}

// Add registers img under id, replacing any previous image.
func (a *Assets) Add(id string, img *ebiten.Image) {
	a.images[id] = img
}

// Len returns the number of registered images.
func (a *Assets) Len() int {
	return len(a.images)
}

// Image returns the image registered under id, or a *MissingResourceError.
func (a *Assets) Image(id string) (*ebiten.Image, error) {
	img, ok := a.images[id]
	if !ok {
		return nil, &MissingResourceError{ID: id}
	}
	return img, nil
}

// Template creates a template of the given world size drawing sprite id.
func (a *Assets) Template(id string, width, height float64) (*Template, error) {
	img, err := a.Image(id)
	if err != nil {
		return nil, err
	}
	return NewTemplate(id, width, height, img), nil
}

// Decode reads an encoded image (PNG, BMP or WebP) and registers it under id.
func (a *Assets) Decode(id string, r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("billow: decode sprite %q: %w", id, err)
	}
	a.Add(id, ebiten.NewImageFromImage(img))
	return nil
}

// LoadFS registers every file in fsys matching pattern, using the file name
// without its extension as the id.
func (a *Assets) LoadFS(fsys fs.FS, pattern string) error {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("billow: load sprites %q: %w", pattern, err)
	}
	for _, name := range matches {
		f, err := fsys.Open(name)
		if err != nil {
			return fmt.Errorf("billow: open %s: %w", name, err)
		}
		base := path.Base(name)
		id := strings.TrimSuffix(base, path.Ext(base))
		err = a.Decode(id, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	Logger().Info("sprites loaded", "pattern", pattern, "count", len(matches))
	return nil
}

// magenta placeholder singleton (no sync.Once; billow is single-threaded)
var magentaImage *ebiten.Image

// ensureMagentaImage returns the 1×1 image drawn for templates without one.
func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
