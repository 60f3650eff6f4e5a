package settings

import "TraceBoard/internal/character"

const (
	DataSourceKey     = "character-tracing-data-source"
	DefaultDataSource = character.SourceAnimals
)

// Store is the subset of fyne.Preferences used here.
type Store interface {
	StringWithFallback(key, fallback string) string
	SetString(key, value string)
}

// Settings persists the child's chosen data source between runs.
type Settings struct {
	store Store
}

func New(store Store) *Settings {
	return &Settings{store: store}
}

// DataSource returns the saved source name, or the default when nothing was saved.
func (s *Settings) DataSource() string {
	if s.store == nil {
		return DefaultDataSource
	}
	name := s.store.StringWithFallback(DataSourceKey, DefaultDataSource)
	if name == "" {
		return DefaultDataSource
	}
	return name
}

func (s *Settings) SetDataSource(name string) {
	if s.store == nil {
		return
	}
	s.store.SetString(DataSourceKey, name)
}

// Apply selects the saved source on p. An unknown saved name is ignored
// by the provider, so the provider's default stays active.
func (s *Settings) Apply(p *character.Provider) string {
	p.SelectSource(s.DataSource())
	return p.Active()
}
