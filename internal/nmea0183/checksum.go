package nmea0183

import (
	"fmt"
	"strings"
)

const (
	// minSentenceSize is "$" + one body byte + "*HH" + terminator.
	minSentenceSize = 6
	// checksumOverhead is "$" + "*HH" + terminator.
	checksumOverhead = 5
)

const hexDigits = "0123456789ABCDEF"

// Checksum returns the XOR of the bytes between a leading '$' and the
// first '*'. Both delimiters are optional.
func Checksum(body string) byte {
	body = strings.TrimPrefix(body, "$")
	if star := strings.IndexByte(body, '*'); star >= 0 {
		body = body[:star]
	}
	var ck byte
	for i := 0; i < len(body); i++ {
		ck ^= body[i]
	}
	return ck
}

// Encapsulate formats a sentence body into dst as "$<body>*HH" followed by
// a NUL byte and returns the sentence length without the NUL.
func Encapsulate(dst []byte, format string, args ...any) (int, error) {
	if len(dst) < minSentenceSize {
		return 0, fmt.Errorf("encapsulate: buffer of %d bytes: %w", len(dst), ErrNoSpace)
	}
	body := fmt.Sprintf(format, args...)
	if len(body)+checksumOverhead > len(dst) {
		return 0, fmt.Errorf("encapsulate: body of %d bytes in %d: %w", len(body), len(dst), ErrNoSpace)
	}

	dst[0] = '$'
	n := 1 + copy(dst[1:], body)
	ck := Checksum(body)
	dst[n] = '*'
	dst[n+1] = hexDigits[ck>>4]
	dst[n+2] = hexDigits[ck&0x0F]
	dst[n+3] = 0
	return n + 3, nil
}

// FormatSentence is Encapsulate without a caller supplied buffer.
func FormatSentence(format string, args ...any) string {
	body := fmt.Sprintf(format, args...)
	ck := Checksum(body)
	return "$" + body + "*" + string([]byte{hexDigits[ck>>4], hexDigits[ck&0x0F]})
}

// Validate checks the checksum of a tokenized sentence. tokens[0] is the
// "$<talker><type>" identifier and the last token is the hex checksum.
func Validate(tokens []string) bool {
	if len(tokens) < 2 {
		return false
	}
	if !strings.HasPrefix(tokens[0], "$") {
		return false
	}

	var ck byte
	for i, tok := range tokens[:len(tokens)-1] {
		if i == 0 {
			tok = tok[1:]
		} else {
			ck ^= ','
		}
		for j := 0; j < len(tok); j++ {
			ck ^= tok[j]
		}
	}

	last := tokens[len(tokens)-1]
	if last == "" {
		return false
	}
	want, err := ParseInteger(last, 16)
	if err != nil || want < 0 || want > 0xFF {
		return false
	}
	return ck == byte(want)
}

// Split breaks a raw sentence line into tokens on ',' and the checksum
// delimiter '*'. Trailing CR/LF is removed. When the line carries a
// checksum it becomes the last token.
func Split(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	star := strings.LastIndexByte(line, '*')
	if star < 0 {
		return strings.Split(line, ",")
	}
	tokens := strings.Split(line[:star], ",")
	return append(tokens, line[star+1:])
}
