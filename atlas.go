package billow

import (
	"encoding/json"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- TexturePacker JSON ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// LoadAtlas registers every frame of a TexturePacker sheet as a sprite. Both
// the hash format (single "frames" object, page 0) and the array format
// ("textures" array, one entry per page) are accepted. Frame names lose their
// file extension, so "bush.png" registers as "bush". Rotated frames are not
// supported.
func (a *Assets) LoadAtlas(jsonData []byte, pages []*ebiten.Image) error {
	var head struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &head); err != nil {
		return fmt.Errorf("billow: failed to parse atlas JSON: %w", err)
	}

	var sheets []jsonTexturePage
	switch {
	case head.Textures != nil:
		if err := json.Unmarshal(head.Textures, &sheets); err != nil {
			return fmt.Errorf("billow: failed to parse atlas textures array: %w", err)
		}
	case head.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(head.Frames, &frames); err != nil {
			return fmt.Errorf("billow: failed to parse atlas frames: %w", err)
		}
		sheets = []jsonTexturePage{{Frames: frames}}
	default:
		return fmt.Errorf("billow: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	// Validate everything before registering anything.
	sprites := make(map[string]*ebiten.Image)
	for i, sheet := range sheets {
		if i >= len(pages) || pages[i] == nil {
			return fmt.Errorf("billow: atlas page %d has no image", i)
		}
		page := pages[i]
		for name, f := range sheet.Frames {
			if f.Rotated {
				return fmt.Errorf("billow: atlas frame %q: rotated frames are not supported", name)
			}
			r := image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
			if r.Empty() || !r.In(page.Bounds()) {
				return fmt.Errorf("billow: atlas frame %q: %v outside page %d bounds %v", name, r, i, page.Bounds())
			}
			sprites[frameID(name)] = page.SubImage(r).(*ebiten.Image)
		}
	}
	for id, img := range sprites {
		a.Add(id, img)
	}
	Logger().Info("atlas loaded", "pages", len(sheets), "sprites", len(sprites))
	return nil
}

func frameID(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
