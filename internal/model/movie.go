package model

// Movie is a single movie record as supplied by the backend.
// The front end never changes its fields, it only reorders, filters and wraps them.
type Movie struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Language string   `json:"language"`
	Genres   []string `json:"genre"`
	Poster   string   `json:"poster,omitempty"`
	Mood     string   `json:"mood,omitempty"`
}

// MoodsResponse is the body of GET /api/moods
type MoodsResponse struct {
	Success bool     `json:"success"`
	Moods   []string `json:"moods"`
	Count   int      `json:"count"`
}

// MoodMoviesResponse is the body of GET /api/movies/{mood}
type MoodMoviesResponse struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
	Quote  string  `json:"quote"`
}

// AllMoviesResponse is the body of GET /api/all-movies
type AllMoviesResponse struct {
	Movies []Movie `json:"movies"`
}

// SearchResponse is the body of GET /api/search
type SearchResponse struct {
	Results []Movie `json:"results"`
	Count   int     `json:"count"`
	Quote   string  `json:"quote"`
}

// QuoteResponse is the body of GET /api/funny-quote
type QuoteResponse struct {
	Quote string `json:"quote"`
}

// RecommendRequest is the body of POST /api/recommend
type RecommendRequest struct {
	Mood string `json:"mood"`
}

// RecommendResponse is the body of POST /api/recommend
type RecommendResponse struct {
	Success  bool    `json:"success"`
	Mood     string  `json:"mood"`
	Movies   []Movie `json:"movies"`
	Count    int     `json:"count"`
	IsRandom bool    `json:"is_random"`
	Error    string  `json:"error,omitempty"`
}

// RandomMood is the literal mood value asking the backend for a random pick.
const RandomMood = "random"
