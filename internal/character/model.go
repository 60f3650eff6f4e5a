package character

import (
	"context"
	"strings"
)

// ImageKind tells a glyph apart from a remote picture.
type ImageKind int

const (
	KindGlyph ImageKind = iota
	KindURL
)

func (k ImageKind) String() string {
	switch k {
	case KindGlyph:
		return "glyph"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// Image is either a text glyph (usually an emoji) or an image URL.
type Image struct {
	kind  ImageKind
	value string
}

func Glyph(text string) Image   { return Image{kind: KindGlyph, value: text} }
func ImageURL(url string) Image { return Image{kind: KindURL, value: url} }

// ParseImage classifies a raw string once, at construction time.
func ParseImage(s string) Image {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return ImageURL(s)
	}
	return Glyph(s)
}

func (i Image) Kind() ImageKind { return i.kind }
func (i Image) Value() string   { return i.value }
func (i Image) IsURL() bool     { return i.kind == KindURL }

func (i Image) MarshalText() ([]byte, error) { return []byte(i.value), nil }

func (i *Image) UnmarshalText(b []byte) error {
	*i = ParseImage(string(b))
	return nil
}

// Character is a displayable unit with identity and provenance.
type Character struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  Image  `json:"image"`
	Source string `json:"source"`
}

// Source is a named provider of characters.
type Source interface {
	Name() string
	Description() string
	Random(ctx context.Context) (Character, error)
	All() []Character
}

// Info describes a registered source.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
