package character

import (
	"context"
	"sync"
)

// Provider holds the registered sources and the active one. It is built
// once by the host and passed to whoever needs characters.
type Provider struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
	active  Source
}

// NewProvider registers sources in order; the first one starts active.
func NewProvider(sources ...Source) *Provider {
	p := &Provider{sources: make(map[string]Source)}
	for _, s := range sources {
		p.Register(s)
	}
	return p
}

// Default returns animals, shapes and pokemon with animals active.
func Default(opts ...PokemonOption) *Provider {
	return NewProvider(Animals(), Shapes(), NewPokemonSource(opts...))
}

func (p *Provider) Register(s Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sources[s.Name()]; !ok {
		p.order = append(p.order, s.Name())
	}
	p.sources[s.Name()] = s
	if p.active == nil {
		p.active = s
	}
}

// SelectSource switches the active source. Unknown names leave the current
// one in effect; the return value only reports whether the switch happened.
func (p *Provider) SelectSource(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sources[name]
	if !ok {
		return false
	}
	p.active = s
	return true
}

func (p *Provider) Active() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.active == nil {
		return ""
	}
	return p.active.Name()
}

func (p *Provider) Random(ctx context.Context) (Character, error) {
	p.mu.RLock()
	s := p.active
	p.mu.RUnlock()
	if s == nil {
		return Character{}, ErrUnknownSource
	}
	return s.Random(ctx)
}

func (p *Provider) All() []Character {
	p.mu.RLock()
	s := p.active
	p.mu.RUnlock()
	if s == nil {
		return nil
	}
	return s.All()
}

func (p *Provider) ListSources() []Info {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Info, 0, len(p.order))
	for _, name := range p.order {
		s := p.sources[name]
		out = append(out, Info{Name: s.Name(), Description: s.Description()})
	}
	return out
}
