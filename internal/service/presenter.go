package service

import (
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/session"
	"github.com/cinesuggest/web/internal/view"
)

// Page maps a session to the full page.
func (c *Controller) Page(st *session.State) view.PageData {
	return view.PageData{
		Moods:   c.moods.All(),
		Quote:   st.Quote,
		Results: ResultsView(st),
		Browse:  st.Browse.Data(model.RegionBrowse, st.BrowseError, nil),
	}
}

// ResultsView maps a session to the results section.
func ResultsView(st *session.State) view.ResultsData {
	r := st.Results
	return view.ResultsData{
		Shown:       r.Shown,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		CountLabel:  r.CountLabel,
		Quote:       r.Quote,
		SearchInput: st.SearchInput,
		Grid:        r.Grid.Data(model.RegionResults, "", r.Placard),
	}
}

// GridView maps one grid of a session.
func GridView(st *session.State, region model.Region) (view.GridData, error) {
	switch region {
	case model.RegionResults:
		return st.Results.Grid.Data(region, "", st.Results.Placard), nil
	case model.RegionBrowse:
		return st.Browse.Data(region, st.BrowseError, nil), nil
	default:
		return view.GridData{}, model.ErrUnknownRegion
	}
}
