package rule

const (
	CR   byte = '\r'
	LF   byte = '\n'
	SP   byte = ' '
	HTAB byte = '\t'
	VT   byte = 0x0B
	FF   byte = 0x0C
)

var (
	CRLF        = []byte{CR, LF}
	Whitespaces = []byte{SP, HTAB, VT, FF, CR}

	// HeadTerminator is the empty line which ends the header section.
	HeadTerminator = []byte{CR, LF, CR, LF}
)

func IsWhitespace(r rune) bool {
	for _, ws := range Whitespaces {
		if r == rune(ws) {
			return true
		}
	}
	return false
}

func IsAlpha(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }
func IsDigit(r rune) bool { return '0' <= r && r <= '9' }

// IsDigits reports whether s is a non-empty run of decimal digits.
func IsDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if !IsDigit(c) {
			return false
		}
	}
	return true
}
