package tracker

import "errors"

// ErrUnsupportedLanguage is returned when an event names a language other
// than the two tracked tags.
var ErrUnsupportedLanguage = errors.New("unsupported language")
