package character

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"
)

const (
	SourcePokemon = "pokemon"

	DefaultPokeAPI  = "https://pokeapi.co/api/v2"
	spriteURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var pokemonLogger = golog.Child("[pokemon]")

// Popular with children; also the candidate set for Random.
var pokemonIDs = []int{1, 4, 7, 25, 52, 104, 131, 143, 150}

var japaneseNames = map[int]string{
	1:   "フシギダネ",
	4:   "ヒトカゲ",
	7:   "ゼニガメ",
	25:  "ピカチュウ",
	52:  "ニャース",
	104: "カラカラ",
	131: "ラプラス",
	143: "カビゴン",
	150: "ミュウツー",
}

type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        map[string]struct {
			FrontDefault *string `json:"front_default"`
		} `json:"other"`
	} `json:"sprites"`
}

func (r *pokemonResponse) sprite() string {
	if s := r.Sprites.FrontDefault; s != nil && *s != "" {
		return *s
	}
	if art, ok := r.Sprites.Other["official-artwork"]; ok && art.FrontDefault != nil {
		return *art.FrontDefault
	}
	return ""
}

// PokemonSource looks characters up on PokéAPI, one GET per Random call.
type PokemonSource struct {
	client  *req.Client
	baseURL string
	intn    func(n int) int
}

type PokemonOption func(*PokemonSource)

func WithBaseURL(u string) PokemonOption {
	return func(p *PokemonSource) {
		if u != "" {
			p.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithTimeout bounds a single lookup at the HTTP client level.
func WithTimeout(d time.Duration) PokemonOption {
	return func(p *PokemonSource) {
		if d > 0 {
			p.client.SetTimeout(d)
		}
	}
}

func NewPokemonSource(opts ...PokemonOption) *PokemonSource {
	p := &PokemonSource{
		client:  req.C().SetUserAgent("TraceBoard"),
		baseURL: DefaultPokeAPI,
		intn:    rand.Intn,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PokemonSource) Name() string        { return SourcePokemon }
func (p *PokemonSource) Description() string { return "ポケモンキャラクター" }

func (p *PokemonSource) Random(ctx context.Context) (Character, error) {
	return p.Fetch(ctx, pokemonIDs[p.intn(len(pokemonIDs))])
}

// Fetch retrieves a single Pokémon by numeric id.
func (p *PokemonSource) Fetch(ctx context.Context, id int) (Character, error) {
	c, err := p.fetch(ctx, id)
	if err != nil {
		pokemonLogger.Errorf("Error fetching Pokemon %d: %v", id, err)
	}
	return c, err
}

func (p *PokemonSource) fetch(ctx context.Context, id int) (Character, error) {
	url := fmt.Sprintf("%s/pokemon/%d", p.baseURL, id)
	resp, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Character{}, &LookupError{Kind: ErrUnexpected, ID: id, Err: err}
		}
		return Character{}, &LookupError{Kind: ErrNetwork, ID: id, Err: err}
	}

	switch code := resp.StatusCode; {
	case code == http.StatusNotFound:
		return Character{}, &LookupError{Kind: ErrNotFound, ID: id, Status: code}
	case code >= http.StatusInternalServerError:
		return Character{}, &LookupError{Kind: ErrServer, ID: id, Status: code}
	case code < 200 || code >= 300:
		return Character{}, &LookupError{Kind: ErrUnexpected, ID: id, Status: code}
	}

	body, err := resp.ToBytes()
	if err != nil {
		return Character{}, &LookupError{Kind: ErrNetwork, ID: id, Err: err}
	}
	var data pokemonResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return Character{}, &LookupError{Kind: ErrMalformed, ID: id, Err: err}
	}

	sprite := data.sprite()
	if sprite == "" {
		return Character{}, &LookupError{Kind: ErrMalformed, ID: id}
	}

	name := japaneseNames[id]
	if name == "" {
		name = data.Name
	}
	return Character{
		ID:     fmt.Sprintf("pokemon-%d", data.ID),
		Name:   name,
		Image:  ImageURL(sprite),
		Source: SourcePokemon,
	}, nil
}

// All is built from the known ids and never touches the network.
func (p *PokemonSource) All() []Character {
	out := make([]Character, 0, len(pokemonIDs))
	for _, id := range pokemonIDs {
		name := japaneseNames[id]
		if name == "" {
			name = fmt.Sprintf("Pokemon %d", id)
		}
		out = append(out, Character{
			ID:     fmt.Sprintf("pokemon-%d", id),
			Name:   name,
			Image:  ImageURL(fmt.Sprintf(spriteURLFormat, id)),
			Source: SourcePokemon,
		})
	}
	return out
}
