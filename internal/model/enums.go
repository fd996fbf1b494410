package model

// Region identifies a grid on the page
type Region string

const (
	RegionResults Region = "results"
	RegionBrowse  Region = "browse"
	// RegionQuote only carries a request token, it has no grid.
	RegionQuote Region = "quote"
)

var GridRegions = []Region{RegionResults, RegionBrowse}

// FilterCriterion selects cards by language
type FilterCriterion string

const (
	FilterAll    FilterCriterion = "all"
	FilterTelugu FilterCriterion = "telugu"
	FilterHindi  FilterCriterion = "hindi"
	FilterOther  FilterCriterion = "other"
)

var ValidFilters = []FilterCriterion{FilterAll, FilterTelugu, FilterHindi, FilterOther}

// SortCriterion orders cards
type SortCriterion string

const (
	SortYearDesc  SortCriterion = "year-desc"
	SortYearAsc   SortCriterion = "year-asc"
	SortTitleAsc  SortCriterion = "title-asc"
	SortTitleDesc SortCriterion = "title-desc"
)

var ValidSorts = []SortCriterion{SortYearDesc, SortYearAsc, SortTitleAsc, SortTitleDesc}

// ResultsKind tells which action filled the results view
type ResultsKind string

const (
	ResultsMood   ResultsKind = "mood"
	ResultsSearch ResultsKind = "search"
	ResultsRandom ResultsKind = "random"
)

// ToastKind styles a toast
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// PlacardAction is the manual retry offered by an error placard
type PlacardAction string

const (
	PlacardReload      PlacardAction = "reload"
	PlacardRetryRandom PlacardAction = "random"
)
