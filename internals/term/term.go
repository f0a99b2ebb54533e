package term

import "os"

// LookupEnv is swapped in tests.
var LookupEnv = os.Getenv

// hyperlinkMarkers are variables set by terminals known to render OSC 8 links.
var hyperlinkMarkers = []string{
	"WT_SESSION",
	"VTE_VERSION",
	"KONSOLE_VERSION",
	"KITTY_WINDOW_ID",
	"WEZTERM_EXECUTABLE",
	"DOMTERM",
	"TERM_PROGRAM",
}

func SupportsHyperlinks() bool {
	switch LookupEnv("TERM") {
	case "", "dumb", "alacritty":
		return false
	}
	if LookupEnv("NO_HYPERLINKS") != "" {
		return false
	}
	for _, key := range hyperlinkMarkers {
		if LookupEnv(key) != "" {
			return true
		}
	}
	return false
}

// ClickableLink wraps label in an OSC 8 hyperlink to url when the terminal
// supports it, and returns the plain label otherwise.
func ClickableLink(label string, url string) string {
	if url == "" {
		return label
	}
	if label == "" {
		label = url
	}
	if !SupportsHyperlinks() {
		return label
	}
	return "\x1b]8;;" + url + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}
