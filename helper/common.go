package helper

import "regexp"

var BindNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func IsValidBindName(s string) bool {
	return BindNameRegex.MatchString(s)
}
