package bitfont

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Printable ASCII, the range covered by the built-in fonts.
const (
	asciiFirst = ' '
	asciiCount = '~' - ' ' + 1
)

// Basic7x13 returns a fixed width 7x13 font covering printable ASCII,
// encoded from basicfont.Face7x13.
var Basic7x13 = sync.OnceValue(func() *Font {
	return mustEncode(basicfont.Face7x13, EncodeOpts{First: asciiFirst, Count: asciiCount})
})

// Basic7x13Variable returns the variable width version of Basic7x13.
var Basic7x13Variable = sync.OnceValue(func() *Font {
	return mustEncode(basicfont.Face7x13, EncodeOpts{First: asciiFirst, Count: asciiCount, Variable: true})
})

func mustEncode(face font.Face, opts EncodeOpts) *Font {
	data, err := Encode(face, opts)
	if err != nil {
		panic(err)
	}
	return MustParse(data)
}
