package character

import (
	"context"
	"math/rand"
)

const (
	SourceAnimals = "animals"
	SourceShapes  = "shapes"
)

var animalCharacters = []Character{
	{ID: "cat", Name: "ねこ", Image: Glyph("🐱"), Source: SourceAnimals},
	{ID: "dog", Name: "いぬ", Image: Glyph("🐶"), Source: SourceAnimals},
	{ID: "rabbit", Name: "うさぎ", Image: Glyph("🐰"), Source: SourceAnimals},
	{ID: "bear", Name: "くま", Image: Glyph("🐻"), Source: SourceAnimals},
	{ID: "fox", Name: "きつね", Image: Glyph("🦊"), Source: SourceAnimals},
	{ID: "lion", Name: "らいおん", Image: Glyph("🦁"), Source: SourceAnimals},
	{ID: "elephant", Name: "ぞう", Image: Glyph("🐘"), Source: SourceAnimals},
	{ID: "panda", Name: "ぱんだ", Image: Glyph("🐼"), Source: SourceAnimals},
}

var shapeCharacters = []Character{
	{ID: "circle", Name: "まる", Image: Glyph("⭕"), Source: SourceShapes},
	{ID: "triangle", Name: "さんかく", Image: Glyph("🔺"), Source: SourceShapes},
	{ID: "square", Name: "しかく", Image: Glyph("⬜"), Source: SourceShapes},
	{ID: "star", Name: "ほし", Image: Glyph("⭐"), Source: SourceShapes},
	{ID: "heart", Name: "はーと", Image: Glyph("❤️"), Source: SourceShapes},
	{ID: "diamond", Name: "だいや", Image: Glyph("💎"), Source: SourceShapes},
}

// StaticSource serves a fixed in-memory list. It never fails.
type StaticSource struct {
	name        string
	description string
	items       []Character
	intn        func(n int) int
}

func NewStaticSource(name, description string, items []Character) *StaticSource {
	return &StaticSource{
		name:        name,
		description: description,
		items:       append([]Character(nil), items...),
		intn:        rand.Intn,
	}
}

func Animals() *StaticSource { return NewStaticSource(SourceAnimals, "動物キャラクター", animalCharacters) }
func Shapes() *StaticSource  { return NewStaticSource(SourceShapes, "基本図形", shapeCharacters) }

func (s *StaticSource) Name() string        { return s.name }
func (s *StaticSource) Description() string { return s.description }

func (s *StaticSource) Random(_ context.Context) (Character, error) {
	if len(s.items) == 0 {
		return Character{}, ErrEmptySource
	}
	return s.items[s.intn(len(s.items))], nil
}

func (s *StaticSource) All() []Character {
	return append([]Character(nil), s.items...)
}
