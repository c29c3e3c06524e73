package cli

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// fieldStyle colors the JSON field blob zap appends to console log lines.
var fieldStyle = &pretty.Style{
	Key:    [2]string{Blue, ResetCode},
	String: [2]string{Green, ResetCode},
	Number: [2]string{Purple, ResetCode},
	True:   [2]string{Yellow, ResetCode},
	False:  [2]string{Yellow, ResetCode},
	Null:   [2]string{DimCode, ResetCode},
	Escape: [2]string{BoldCode, ResetCode},
}

// HighlightJSON colors a JSON document for the terminal. Input that is not
// valid JSON, such as a blob followed by a newline and stack trace, is
// returned untouched.
func HighlightJSON(s string) string {
	if !Enabled() || !gjson.Valid(s) {
		return s
	}
	return string(pretty.Color([]byte(s), fieldStyle))
}
