package adif

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/dxtrack/internal/shared"
)

// Token is one raw ADIF field: an uppercased tag name and its value.
// Marker tags like EOR and EOH carry an empty value.
type Token struct {
	Name  string
	Value string
}

// IsEOR reports whether the token is an end-of-record marker.
func (t Token) IsEOR() bool { return t.Name == "EOR" }

// IsEOH reports whether the token is an end-of-header marker.
func (t Token) IsEOH() bool { return t.Name == "EOH" }

// Scanner walks raw ADIF text and emits one Token per field tag. It makes a
// single forward pass and cannot be restarted.
type Scanner struct {
	data  []byte
	pos   int
	found bool // at least one valid tag emitted
}

// NewScanner creates a Scanner over the raw file bytes.
func NewScanner(raw []byte) *Scanner {
	return &Scanner{data: raw}
}

// Next returns the next field token. It returns [io.EOF] at the end of
// well-formed input, or a [shared.ErrMalformedInput] wrap when the whole
// input contained no recognizable ADIF tag.
//
// A declared length slices the value; a missing or oversized length falls
// back to everything up to the next tag marker. Malformed tags are skipped,
// not fatal.
func (s *Scanner) Next() (Token, error) {
	for {
		open := indexFrom(s.data, s.pos, '<')
		if open < 0 {
			return s.eof()
		}

		close_ := indexFrom(s.data, open+1, '>')
		if close_ < 0 {
			return s.eof()
		}

		name, length, ok := parseTag(string(s.data[open+1 : close_]))
		if !ok {
			// Not a tag, e.g. a stray "<" in header prose. Resume after it.
			s.pos = open + 1
			continue
		}

		// The value region runs to the next tag marker regardless of the
		// declared length; the length only slices within it.
		end := indexFrom(s.data, close_+1, '<')
		if end < 0 {
			end = len(s.data)
		}
		region := string(s.data[close_+1 : end])
		if length >= 0 && length <= len(region) {
			region = region[:length]
		}

		s.pos = end
		s.found = true
		return Token{Name: name, Value: strings.TrimSpace(region)}, nil
	}
}

func (s *Scanner) eof() (Token, error) {
	if !s.found {
		return Token{}, fmt.Errorf("%w: no ADIF tags found", shared.ErrMalformedInput)
	}
	return Token{}, io.EOF
}

// parseTag splits the inside of an ADIF tag ("CALL:5" or "call:5:S" or
// "EOR") into an uppercased name and a declared length. The length is -1
// when absent or unparsable.
func parseTag(inner string) (string, int, bool) {
	parts := strings.SplitN(inner, ":", 3)
	name := strings.ToUpper(strings.TrimSpace(parts[0]))
	if name == "" || strings.ContainsAny(name, " \t\r\n<") {
		return "", 0, false
	}

	length := -1
	if len(parts) > 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && n >= 0 {
			length = n
		}
	}
	return name, length, true
}

func indexFrom(data []byte, from int, b byte) int {
	for i := from; i < len(data); i++ {
		if data[i] == b {
			return i
		}
	}
	return -1
}
