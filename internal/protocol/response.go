package protocol

import "strings"

// Status-line prefixes. A reply is either a bare payload (number, version
// text, XML listing) or a status line of the form "R-<code>[ diagnostic]".
const (
	// SuccessPrefix marks a successful command acknowledgement.
	SuccessPrefix = "R-200"

	// statusPrefix marks any status line, success or failure.
	statusPrefix = "R"
)

// IsSuccess reports whether resp acknowledges success. Only the prefix is
// examined; trailing diagnostic text is ignored.
func IsSuccess(resp string) bool {
	return strings.HasPrefix(resp, SuccessPrefix)
}

// IsFailure reports whether resp is a status line other than success.
// Bare payloads (listings, numbers) are neither success nor failure.
func IsFailure(resp string) bool {
	return strings.HasPrefix(resp, statusPrefix) && !IsSuccess(resp)
}

// TrimResponse strips the trailing NUL bytes and surrounding whitespace a
// pipe read may carry along with the payload.
func TrimResponse(resp string) string {
	return strings.TrimSpace(strings.TrimRight(resp, "\x00"))
}
