package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/desertthunder/dxtrack/internal/shared"
)

// ChallengeSlot is one credited entity/band pair from an LoTW Challenge
// export.
type ChallengeSlot struct {
	Entity string `json:"entity"`
	Band   string `json:"band"`
	Mode   string `json:"mode,omitempty"`
}

// ChallengeSummary aggregates the credited slots from an export file.
type ChallengeSummary struct {
	Slots   []ChallengeSlot `json:"slots"`
	PerBand map[string]int  `json:"per_band"`
	Total   int             `json:"total"`
}

// ParseChallenge reads an LoTW Challenge CSV export. The export's column
// order varies between downloads, so the header row is located by name:
// entity column matches "DXCC" or "ENTITY", band matches "BAND", and an
// optional "MODE" column is carried through when present.
func ParseChallenge(r io.Reader) (*ChallengeSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedInput, err)
	}

	entityCol, bandCol, modeCol := -1, -1, -1
	start := 0
	for i, row := range rows {
		for j, cell := range row {
			switch name := strings.ToUpper(strings.TrimSpace(cell)); {
			case strings.Contains(name, "DXCC"), strings.Contains(name, "ENTITY"), name == "COUNTRY":
				entityCol = j
			case name == "BAND":
				bandCol = j
			case name == "MODE":
				modeCol = j
			}
		}
		if entityCol >= 0 && bandCol >= 0 {
			start = i + 1
			break
		}
		entityCol, bandCol, modeCol = -1, -1, -1
	}
	if entityCol < 0 || bandCol < 0 {
		return nil, fmt.Errorf("%w: no entity/band header row found", shared.ErrMalformedInput)
	}

	summary := &ChallengeSummary{PerBand: map[string]int{}}
	for _, row := range rows[start:] {
		if entityCol >= len(row) || bandCol >= len(row) {
			continue
		}
		slot := ChallengeSlot{
			Entity: strings.TrimSpace(row[entityCol]),
			Band:   strings.ToLower(strings.TrimSpace(row[bandCol])),
		}
		if slot.Entity == "" || slot.Band == "" {
			continue
		}
		if modeCol >= 0 && modeCol < len(row) {
			slot.Mode = strings.ToUpper(strings.TrimSpace(row[modeCol]))
		}
		summary.Slots = append(summary.Slots, slot)
		summary.PerBand[slot.Band]++
		summary.Total++
	}

	return summary, nil
}

// Bands returns the credited bands in ascending order by name.
func (s *ChallengeSummary) Bands() []string {
	bands := make([]string, 0, len(s.PerBand))
	for band := range s.PerBand {
		bands = append(bands, band)
	}
	sort.Strings(bands)
	return bands
}

// SaveChallenge writes a summary as JSON for later comparison.
func SaveChallenge(path string, summary *ChallengeSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	return nil
}

// LoadChallenge reads a summary previously written by SaveChallenge.
func LoadChallenge(path string) (*ChallengeSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorageRead, err)
	}
	var summary ChallengeSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorageRead, err)
	}
	if summary.PerBand == nil {
		summary.PerBand = map[string]int{}
	}
	return &summary, nil
}
