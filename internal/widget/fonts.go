package widget

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Embedded Go fonts, so rendering never depends on system font paths.
var (
	fontOnce    sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font

	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	size float64
	bold bool
}

func loadFonts() {
	var err error
	regularFont, err = opentype.Parse(goregular.TTF)
	if err != nil {
		panic("widget: failed to parse embedded regular font: " + err.Error())
	}
	boldFont, err = opentype.Parse(gobold.TTF)
	if err != nil {
		panic("widget: failed to parse embedded bold font: " + err.Error())
	}
}

// Face returns a cached font face for the given size. Faces are shared
// across renders; opentype faces are safe for the single-threaded use a
// render call makes of them.
func Face(size float64, bold bool) font.Face {
	fontOnce.Do(loadFonts)

	key := faceKey{size: size, bold: bold}
	faceMu.Lock()
	defer faceMu.Unlock()

	if f, ok := faceCache[key]; ok {
		return f
	}

	src := regularFont
	if bold {
		src = boldFont
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// The embedded fonts parse at init; face creation only fails on
		// invalid options, which would be a programming error.
		panic("widget: failed to create font face: " + err.Error())
	}
	faceCache[key] = face
	return face
}
