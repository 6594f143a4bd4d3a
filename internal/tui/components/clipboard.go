package components

import "github.com/atotto/clipboard"

// Clipboard is the source of text for the paste binding. Bracketed pastes
// arrive through the terminal and never touch it.
type Clipboard interface {
	ReadText() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// SystemClipboard reads the OS clipboard.
var SystemClipboard Clipboard = systemClipboard{}
