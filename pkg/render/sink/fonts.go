package sink

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/repograph/pkg/render"
)

var (
	fontsOnce    sync.Once
	regularFont  *truetype.Font
	boldFont     *truetype.Font
	fontParseErr error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontParseErr = truetype.Parse(goregular.TTF); fontParseErr != nil {
			return
		}
		boldFont, fontParseErr = truetype.Parse(gobold.TTF)
	})
	return fontParseErr
}

type faceKey struct {
	size float64
	bold bool
}

// faceCache hands out font faces keyed by pixel size and weight. Sizes are
// rounded to a quarter pixel to keep the cache small while zooming.
type faceCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(size float64, bold bool) font.Face {
	if err := loadFonts(); err != nil {
		return nil
	}
	key := faceKey{size: math.Max(1, math.Round(size*4)/4), bold: bold}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f
	}
	ttf := regularFont
	if bold {
		ttf = boldFont
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = f
	return f
}

// measure returns the advance width of s at the font's nominal size.
func (c *faceCache) measure(s string, f render.Font) float64 {
	face := c.face(f.Size, f.Bold)
	if face == nil {
		// rough fallback: Go fonts average a little over half an em
		return float64(len([]rune(s))) * f.Size * 0.55
	}
	return float64(font.MeasureString(face, s)) / 64
}

var sharedFaces = newFaceCache()
