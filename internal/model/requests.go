package model

// SearchRequest is the query string of GET /search
type SearchRequest struct {
	Query string `query:"q" validate:"max=100"`
}

// GridPath is the path of the /grid/:region routes
type GridPath struct {
	Region Region `params:"region" validate:"required,oneof=results browse"`
}

// FilterRequest is the form of POST /grid/:region/filter
type FilterRequest struct {
	Filter FilterCriterion `form:"filter" validate:"required,oneof=all telugu hindi other"`
}

// SortRequest is the form of POST /grid/:region/sort
type SortRequest struct {
	Sort SortCriterion `form:"sort" validate:"required,oneof=year-desc year-asc title-asc title-desc"`
}

// CardPath is the path of the /cards/:region/:id routes
type CardPath struct {
	Region Region `params:"region" validate:"required,oneof=results browse"`
	ID     int    `params:"id" validate:"min=0"`
}

// MoodPath is the path of POST /moods/:id
type MoodPath struct {
	ID string `params:"id" validate:"required,max=32,lowercase"`
}

// QuoteRequest is the form of POST /quote
type QuoteRequest struct {
	Announce bool `form:"announce"`
}
