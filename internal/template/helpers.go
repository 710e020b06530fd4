package template

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Helper formats a context value inside a call expression. Returning false
// means the value was not usable and the call renders nothing, which is not
// an error.
type Helper func(Value) (string, bool)

// helpers is the static registry of callable functions, read-only after
// process start
var helpers = map[string]Helper{
	"lc":       helperLower,
	"uc":       helperUpper,
	"duration": helperDuration,
}

// Casers are stateful, so each call builds its own. language.Und gives the
// locale-independent full Unicode mapping.
func helperLower(v Value) (string, bool) {
	return cases.Lower(language.Und).String(v.String()), true
}

func helperUpper(v Value) (string, bool) {
	return cases.Upper(language.Und).String(v.String()), true
}

// helperDuration renders an integer count of microseconds as H:MM:SS, or
// M:SS under an hour
func helperDuration(v Value) (string, bool) {
	us, ok := v.Int64()
	if !ok {
		return "", false
	}

	seconds := (us / 1000000) % 60
	minutes := (us / 1000000 / 60) % 60
	hours := us / 1000000 / 60 / 60

	if hours != 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds), true
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds), true
}
