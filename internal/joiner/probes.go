package joiner

import "github.com/nguyentantai21042004/meetscribe/internal/driver"

type joinPath int

const (
	pathDirect joinPath = iota
	pathRequest
	// pathInfer decides between direct and request from the control's text.
	pathInfer
)

func (p joinPath) String() string {
	switch p {
	case pathDirect:
		return "direct"
	case pathRequest:
		return "request"
	default:
		return "inferred"
	}
}

type joinProbe struct {
	name  string
	query driver.Query
	path  joinPath
}

const anyButton = "button, [role='button']"

// Join controls, most specific first. The first visible match wins.
var joinProbes = []joinProbe{
	{"aria join now", driver.Query{Selector: "button[aria-label*='Join now' i], [role='button'][aria-label*='Join now' i]"}, pathDirect},
	{"aria join meeting", driver.Query{Selector: "button[aria-label*='Join meeting' i], [role='button'][aria-label*='Join meeting' i]"}, pathDirect},
	{"text join now", driver.Query{Selector: anyButton, Text: `^join now$`}, pathDirect},
	{"text join meeting", driver.Query{Selector: anyButton, Text: `^join meeting$`}, pathDirect},

	{"aria ask to join", driver.Query{Selector: "button[aria-label*='Ask to join' i], [role='button'][aria-label*='Ask to join' i]"}, pathRequest},
	{"aria request to join", driver.Query{Selector: "button[aria-label*='Request to join' i], [role='button'][aria-label*='Request to join' i]"}, pathRequest},
	{"text ask to join", driver.Query{Selector: anyButton, Text: `^ask to join$`}, pathRequest},
	{"text request to join", driver.Query{Selector: anyButton, Text: `^request to join$`}, pathRequest},

	{"text join", driver.Query{Selector: anyButton, Text: `^join$`}, pathInfer},
	{"jsname join", driver.Query{Selector: "button[jsname='Qx7uuf']"}, pathInfer},
	{"idom join", driver.Query{Selector: "[data-idom-class*='join'] button"}, pathInfer},
	{"role join", driver.Query{Selector: anyButton, Text: `join|ask to join|request to join|join now|join meeting`}, pathInfer},
}

var (
	cameraOffQuery = driver.Query{Selector: "[data-is-muted='false'][aria-label*='camera' i], [aria-label*='Turn off camera' i]"}
	micOffQuery    = driver.Query{Selector: "[data-is-muted='false'][aria-label*='microphone' i], [aria-label*='Turn off microphone' i]"}
	nameInputQuery = driver.Query{Selector: "input[aria-label*='name' i], input[placeholder*='name' i]"}
)

// Affordances only rendered once the bot is inside the call.
var inMeetingProbes = []driver.Query{
	{Selector: "[aria-label*='Leave call' i], [aria-label*='Leave meeting' i]"},
	{Selector: "[data-tooltip*='Leave call' i]"},
	{Selector: "button[aria-label*='captions' i], button[aria-label*='subtitle' i]"},
	{Selector: "button[aria-label*='people' i], button[aria-label*='participant' i]"},
	{Selector: "[data-meeting-title]"},
}

var captionsOnProbes = []driver.Query{
	{Selector: "button[aria-label*='Turn off captions' i]"},
	{Selector: "button[aria-pressed='true'][aria-label*='caption' i]"},
	{Selector: "[data-tooltip*='Turn off captions' i]"},
	{Selector: "[class*='caption'], .iTTPOb, .TBMuR, .iOzk7, [data-message-text]"},
}

var captionControlProbes = []driver.Query{
	{Selector: "button[aria-label*='Turn on captions' i]"},
	{Selector: "[data-tooltip*='Turn on captions' i]"},
	{Selector: "button[aria-label*='captions' i], button[aria-label*='subtitle' i]"},
	{Selector: anyButton, Text: `^(closed_caption|cc|captions)$`},
}

var (
	blockedTexts = []string{
		"You can't join this video call",
		"Return to home screen",
		"Returning to home screen",
	}
	deniedTexts = append([]string{
		"You were removed from the meeting",
		"denied your request",
	}, blockedTexts...)
	waitingTexts = []string{
		"Waiting for someone to let you in",
		"Asking to be let in",
		"Someone will let you in soon",
	}
)
