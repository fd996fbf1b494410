package service

import "fmt"

// Toast and placard text shown by the page.
const (
	msgMoodDefault     = "Great movies coming your way!"
	msgMoodFailed      = "Oops! Couldn't load movies. Please try again."
	msgSearchEmpty     = "🔍 Please enter something to search!"
	msgSearchFailed    = "Oops! Search failed. Please try again."
	msgQuoteAnnounced  = "✨ Here's a fresh funny quote!"
	msgShuffled        = "🔀 Movies shuffled!"
	msgSorted          = "Sorted!"
	msgBack            = "👈 Back to mood selection!"
	msgFeedback        = "💬 Thanks for your feedback! We appreciate it!"
	msgResultsError    = "Error loading movies. Please try again!"
	msgBrowseError     = "Error loading movies. Please refresh the page."
	msgConnectFailed   = "Failed to connect to server"
	msgRecommendFailed = "Couldn't pick a movie right now."
	msgReloadPage      = "Reload Page"
	msgTryAgain        = "Try Again"

	titleSearch = "Search Results"
	titleRandom = "Random Movie Pick!"
)

var moodToasts = map[string]string{
	"happy":        "😄 Get ready for some happy vibes!",
	"sad":          "😢 Perfect movies for emotional moments!",
	"romantic":     "❤️ Love is in the air!",
	"angry":        "🔥 Let's channel that energy!",
	"relaxed":      "😌 Time to relax and enjoy!",
	"excited":      "🎉 Exciting times ahead!",
	"motivational": "💪 Get inspired!",
	"adventurous":  "🗺️ Adventure awaits!",
}

// LocalQuotes are served when the backend cannot supply a quote.
var LocalQuotes = []string{
	"🎬 Movies: Because staring at walls is so 1990s!",
	"🍿 Popcorn + Movie = Life solved!",
	"😴 Who needs sleep when you have movies?",
}

// WelcomeLines greet a page when its websocket connects.
var WelcomeLines = []string{
	"🎬 Welcome to CineSuggest! Your perfect movie match awaits!",
	"🍿 Grab some popcorn! Your movie journey starts here!",
	"🌟 Discover amazing Telugu & Hindi movies based on your mood!",
	"🎉 Let's find your next favorite movie together!",
}

func moodToast(moodID string) string {
	if msg, ok := moodToasts[moodID]; ok {
		return msg
	}
	return msgMoodDefault
}

func moodTitle(displayName string) string {
	return displayName + " Movies"
}

func moodCountLabel(count int) string {
	return fmt.Sprintf("%d movies found", count)
}

func searchCountLabel(count int, query string) string {
	return fmt.Sprintf("%d movies found for \"%s\"", count, query)
}

func searchFoundToast(count int, query string) string {
	return fmt.Sprintf("🎉 Found %d movies for \"%s\"!", count, query)
}

func searchNoneToast(query string) string {
	return fmt.Sprintf("😕 No movies found for \"%s\". Try different keywords!", query)
}

func randomSubtitle(mood string) string {
	return fmt.Sprintf("Random (%s)", mood)
}

func randomCountLabel(n int) string {
	if n == 1 {
		return "1 movie"
	}
	return fmt.Sprintf("%d movies", n)
}

func watchlistToast(title string) string {
	return fmt.Sprintf("🎬 Added \"%s\" to your watchlist!", title)
}

func filterToast(label string) string {
	return "Filtered by: " + label
}
