// Package naming turns titles and user-supplied names into safe filenames.
package naming

import "strings"

// MaxLength is the longest filename stem Sanitize returns, in characters.
const MaxLength = 150

var replacer = strings.NewReplacer(
	"\\", "", "/", "", "*", "", "?", "", ":", "",
	"\"", "", "<", "", ">", "", "|", "",
	" ", "_",
)

// Sanitize strips \ / * ? : " < > |, replaces spaces with underscores and
// truncates to MaxLength characters. It does not make names unique.
func Sanitize(name string) string {
	sanitized := []rune(replacer.Replace(name))
	if len(sanitized) > MaxLength {
		sanitized = sanitized[:MaxLength]
	}
	return string(sanitized)
}
