package bot

import (
	"fmt"
	"time"
)

// Texts holds the user-facing wording
type Texts struct {
	Start           string
	Help            string
	NotFound        string
	Reminder        string
	Listing         string
	Failure         string
	GroupRedirect   string
	GroupButton     string
	PrevButton      string
	NextButton      string
	InvalidCallback string
	FileNotFound    string
	Denied          string
	DeleteUsage     string
}

// DefaultTexts returns the stock wording for messages removed after delay, with a
// support channel footer when one is given
func DefaultTexts(supportChannel string, delay time.Duration) Texts {
	footer := ""
	if supportChannel != "" {
		footer = "\nJoin SUPPORT CHANNEL: " + supportChannel
	}

	expiry := "This message will delete in " + delayPhrase(delay) + "."
	reminder := "ℹ️ " + expiry + " Please forward the file if you want to keep it." + footer

	return Texts{
		Start:           "👋 Welcome! Send a movie name to search files." + footer,
		Help:            "Send a movie name to search files. If available, files will be sent to you." + footer,
		NotFound:        "🚫 Not Found! " + expiry + footer,
		Reminder:        reminder,
		Listing:         "Multiple files found, select from below:\n\n" + reminder,
		Failure:         "⚠️ Search is temporarily unavailable, please try again later.",
		GroupRedirect:   "⚠️ Please start me in private chat to get movie files.",
		GroupButton:     "📩 Start me",
		PrevButton:      "⬅️ Prev",
		NextButton:      "➡️ Next",
		InvalidCallback: "Invalid callback.",
		FileNotFound:    "File not found.",
		Denied:          "❌ You don't have permission to use this command.",
		DeleteUsage:     "Usage: /deletefile <movie name>",
	}
}

// delayPhrase renders d as whole minutes or seconds
func delayPhrase(d time.Duration) string {
	unit, n := "second", int64(d.Round(time.Second)/time.Second)
	if d >= time.Minute && d%time.Minute == 0 {
		unit, n = "minute", int64(d/time.Minute)
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}
