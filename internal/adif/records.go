package adif

import (
	"errors"
	"io"
)

// Record is the raw field map of one logical QSO record. Unknown tags are
// retained so nothing from the source file is lost before mapping.
type Record map[string]string

// ReadRecords consumes the scanner's token stream and groups fields into
// records at <EOR> boundaries, preserving source file order.
//
// Everything before an <EOH> marker belongs to the file header and is
// discarded. Records missing mandatory fields are still emitted; validation
// belongs to the mapper. Trailing fields with no closing <EOR> form a final
// record.
func ReadRecords(s *Scanner) ([]Record, error) {
	var (
		records []Record
		current = Record{}
	)

	for {
		tok, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		switch {
		case tok.IsEOH():
			// Header fields accumulated so far are not QSO data.
			current = Record{}
		case tok.IsEOR():
			if len(current) > 0 {
				records = append(records, current)
			}
			current = Record{}
		default:
			current[tok.Name] = tok.Value
		}
	}

	if len(current) > 0 {
		records = append(records, current)
	}

	return records, nil
}

// Parse is a convenience wrapper: scan raw bytes and group into records.
func Parse(raw []byte) ([]Record, error) {
	return ReadRecords(NewScanner(raw))
}
