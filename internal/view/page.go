package view

import "github.com/cinesuggest/web/internal/model"

// Placard is an in-grid error with a manual retry action.
type Placard struct {
	Message     string              `json:"message"`
	ActionLabel string              `json:"actionLabel"`
	Action      model.PlacardAction `json:"action"`
}

// Option is a filter button or sort choice.
type Option struct {
	Value  string
	Label  string
	Active bool
}

// GridData is the template input for one grid.
type GridData struct {
	Region      model.Region
	ContainerID string
	Cards       []Card
	Empty       bool
	Error       string
	Placard     *Placard
	Filters     []Option
	Sorts       []Option

	// OOB marks the filter bar for an out-of-band swap in a grid partial.
	OOB bool
}

// ResultsData is the template input for the results section.
type ResultsData struct {
	Shown       bool
	Title       string
	Subtitle    string
	CountLabel  string
	Quote       string
	SearchInput string
	Grid        GridData

	// OOB marks the search input for an out-of-band swap in a results partial.
	OOB bool
}

// PageData is the template input for the whole page.
type PageData struct {
	Moods   []model.Mood
	Quote   string
	Results ResultsData
	Browse  GridData
}

// ContainerID returns the DOM id of a region's card container.
func ContainerID(region model.Region) string {
	if region == model.RegionResults {
		return "recommendationsContainer"
	}
	return "allMoviesContainer"
}

var filterLabels = map[model.FilterCriterion]string{
	model.FilterAll:    "All",
	model.FilterTelugu: "Telugu",
	model.FilterHindi:  "Hindi",
	model.FilterOther:  "Other",
}

var sortLabels = map[model.SortCriterion]string{
	model.SortYearDesc:  "Newest first",
	model.SortYearAsc:   "Oldest first",
	model.SortTitleAsc:  "Title A-Z",
	model.SortTitleDesc: "Title Z-A",
}

// Data builds the template input for g shown in region.
func (g *Grid) Data(region model.Region, errText string, placard *Placard) GridData {
	d := GridData{
		Region:      region,
		ContainerID: ContainerID(region),
		Cards:       g.Cards(region),
		Empty:       g.Len() == 0,
		Error:       errText,
		Placard:     placard,
	}
	filter := g.Filter
	if filter == "" {
		filter = model.FilterAll
	}
	for _, f := range model.ValidFilters {
		d.Filters = append(d.Filters, Option{Value: string(f), Label: filterLabels[f], Active: f == filter})
	}
	for _, s := range model.ValidSorts {
		d.Sorts = append(d.Sorts, Option{Value: string(s), Label: sortLabels[s], Active: s == g.Sort})
	}
	return d
}
