// Package session keeps the view state of each browser session.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/view"
)

// ErrStale aborts an update whose request token no longer owns its region.
var ErrStale = errors.New("stale response")

// Results is the results view: title, counters and its grid.
type Results struct {
	Shown      bool              `json:"shown"`
	Loading    bool              `json:"loading"`
	Kind       model.ResultsKind `json:"kind,omitempty"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle,omitempty"`
	MoodID     string            `json:"moodId,omitempty"`
	Query      string            `json:"query,omitempty"`
	CountLabel string            `json:"countLabel"`
	Quote      string            `json:"quote,omitempty"`
	Grid       view.Grid         `json:"grid"`
	Placard    *view.Placard     `json:"placard,omitempty"`
}

// State is everything the page shows for one session.
type State struct {
	ID           string                  `json:"id"`
	Results      Results                 `json:"results"`
	Browse       view.Grid               `json:"browse"`
	BrowseLoaded bool                    `json:"browseLoaded"`
	BrowseError  string                  `json:"browseError,omitempty"`
	Quote        string                  `json:"quote"`
	SearchInput  string                  `json:"searchInput"`
	Tokens       map[model.Region]string `json:"tokens"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// New returns the initial state: results hidden, nothing loaded.
func New(id string) *State {
	return &State{
		ID:        id,
		Results:   Results{Grid: view.NewGrid(nil)},
		Browse:    view.NewGrid(nil),
		Tokens:    make(map[model.Region]string),
		CreatedAt: time.Now().UTC(),
	}
}

// Begin issues a new request token for region, superseding any earlier one.
func (s *State) Begin(region model.Region) string {
	if s.Tokens == nil {
		s.Tokens = make(map[model.Region]string)
	}
	token := uuid.NewString()
	s.Tokens[region] = token
	return token
}

// Owns reports whether token is the latest request issued for region.
func (s *State) Owns(region model.Region, token string) bool {
	return token != "" && s.Tokens[region] == token
}

// Grid returns the grid shown in region.
func (s *State) Grid(region model.Region) (*view.Grid, error) {
	switch region {
	case model.RegionResults:
		return &s.Results.Grid, nil
	case model.RegionBrowse:
		return &s.Browse, nil
	default:
		return nil, model.ErrUnknownRegion
	}
}
