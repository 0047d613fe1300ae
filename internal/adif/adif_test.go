package adif

import (
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/dxtrack/internal/shared"
)

func TestScanner(t *testing.T) {
	t.Run("basic fields", func(t *testing.T) {
		s := NewScanner([]byte("<CALL:5>W1AW/<BAND:3>20m<EOR>"))

		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if tok.Name != "CALL" || tok.Value != "W1AW/" {
			t.Errorf("got %q=%q, want CALL=W1AW/", tok.Name, tok.Value)
		}

		tok, _ = s.Next()
		if tok.Name != "BAND" || tok.Value != "20m" {
			t.Errorf("got %q=%q, want BAND=20m", tok.Name, tok.Value)
		}

		tok, _ = s.Next()
		if !tok.IsEOR() {
			t.Errorf("expected EOR, got %q", tok.Name)
		}

		if _, err := s.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("expected EOF, got %v", err)
		}
	})

	t.Run("lowercase tag names are uppercased", func(t *testing.T) {
		s := NewScanner([]byte("<call:6>ja1abc<eor>"))
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if tok.Name != "CALL" {
			t.Errorf("tag not normalized: %q", tok.Name)
		}
		tok, _ = s.Next()
		if !tok.IsEOR() {
			t.Errorf("lowercase eor not recognized")
		}
	})

	t.Run("oversized length falls back to delimiter", func(t *testing.T) {
		s := NewScanner([]byte("<CALL:99>JA1ABC<EOR>"))
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if tok.Value != "JA1ABC" {
			t.Errorf("value = %q, want JA1ABC", tok.Value)
		}
	})

	t.Run("declared length slices within region", func(t *testing.T) {
		s := NewScanner([]byte("<NAME:3>Bobby<EOR>"))
		tok, _ := s.Next()
		if tok.Value != "Bob" {
			t.Errorf("value = %q, want Bob", tok.Value)
		}
	})

	t.Run("missing length uses whole region", func(t *testing.T) {
		s := NewScanner([]byte("<COMMENT>hello there<EOR>"))
		tok, _ := s.Next()
		if tok.Value != "hello there" {
			t.Errorf("value = %q, want full region", tok.Value)
		}
	})

	t.Run("type suffix is ignored", func(t *testing.T) {
		s := NewScanner([]byte("<FREQ:6:N>14.074<EOR>"))
		tok, _ := s.Next()
		if tok.Name != "FREQ" || tok.Value != "14.074" {
			t.Errorf("got %q=%q", tok.Name, tok.Value)
		}
	})

	t.Run("stray angle brackets in prose", func(t *testing.T) {
		s := NewScanner([]byte("generated by <some tool>\n<CALL:6>JA1ABC<EOR>"))
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if tok.Name != "CALL" {
			t.Errorf("expected prose to be skipped, got %q", tok.Name)
		}
	})

	t.Run("no tags at all", func(t *testing.T) {
		s := NewScanner([]byte("just some text"))
		if _, err := s.Next(); !errors.Is(err, shared.ErrMalformedInput) {
			t.Errorf("expected ErrMalformedInput, got %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		s := NewScanner(nil)
		if _, err := s.Next(); !errors.Is(err, shared.ErrMalformedInput) {
			t.Errorf("expected ErrMalformedInput, got %v", err)
		}
	})
}

func TestReadRecords(t *testing.T) {
	t.Run("header is discarded", func(t *testing.T) {
		raw := "Personal log\n<ADIF_VER:5>3.1.4<PROGRAMID:4>test<EOH>\n" +
			"<CALL:6>JA1ABC<BAND:3>20m<EOR>\n" +
			"<CALL:6>DL2XYZ<BAND:3>40m<EOR>\n"

		records, err := Parse([]byte(raw))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if _, ok := records[0]["ADIF_VER"]; ok {
			t.Errorf("header field leaked into first record")
		}
		if records[0]["CALL"] != "JA1ABC" || records[1]["CALL"] != "DL2XYZ" {
			t.Errorf("records out of order: %v", records)
		}
	})

	t.Run("no header", func(t *testing.T) {
		records, err := Parse([]byte("<CALL:6>JA1ABC<EOR>"))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(records) != 1 || records[0]["CALL"] != "JA1ABC" {
			t.Errorf("unexpected records: %v", records)
		}
	})

	t.Run("trailing record without EOR", func(t *testing.T) {
		records, err := Parse([]byte("<CALL:6>JA1ABC<EOR><CALL:6>DL2XYZ<BAND:3>40m"))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected trailing record to be emitted, got %d", len(records))
		}
		if records[1]["BAND"] != "40m" {
			t.Errorf("trailing record incomplete: %v", records[1])
		}
	})

	t.Run("empty records are dropped", func(t *testing.T) {
		records, err := Parse([]byte("<CALL:6>JA1ABC<EOR><EOR><EOR>"))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected 1 record, got %d", len(records))
		}
	})

	t.Run("malformed input surfaces", func(t *testing.T) {
		_, err := Parse([]byte("nothing here"))
		if !errors.Is(err, shared.ErrMalformedInput) {
			t.Errorf("expected ErrMalformedInput, got %v", err)
		}
	})
}
