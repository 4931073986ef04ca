package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans rich-text HTML coming from the client editor to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
