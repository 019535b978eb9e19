package validation

import (
	"regexp"
)

// Constants obtained from https://github.com/kubernetes/apimachinery/blob/master/pkg/util/validation/validation.go
const (
	qnameCharFmt           = "[A-Za-z0-9]"
	qnameExtCharFmt        = "[-A-Za-z0-9_.]"
	qualifiedNameFmt       = "(" + qnameCharFmt + qnameExtCharFmt + "*)?" + qnameCharFmt
	QualifiedNameMaxLength = 63
	QualifiedNameErrMsg    = "must consist of alphanumeric characters, " +
		"'-', '_' or '.', and must start and end with an alphanumeric character"
)

var qualifiedNameRegexp = regexp.MustCompile("^" + qualifiedNameFmt + "$")

// ValidMessageName reports whether str can name a config message.
func ValidMessageName(str string) bool {
	return str != "" && len(str) <= QualifiedNameMaxLength && qualifiedNameRegexp.MatchString(str)
}

const PlayerNameErrMsg = "must be 3 to 16 characters of letters, digits or '_'"

var playerNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// ValidPlayerName reports whether str is a valid Minecraft username.
func ValidPlayerName(str string) bool {
	return playerNameRegexp.MatchString(str)
}
