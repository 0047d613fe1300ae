package dxcc

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

//go:embed dxcc.json
var embeddedData []byte

// Entity is one ARRL DXCC entity.
type Entity struct {
	ID       string   // stable numeric ARRL entity code, stored as string
	Name     string   // canonical display name
	Prefixes []string // callsign prefixes assigned to the entity
	Aliases  []string // alternate country spellings for import matching
	Deleted  bool     // deleted entities stay in the list but do not count toward awards
}

type rawEntity struct {
	EntityCode int      `json:"entityCode"`
	Name       string   `json:"name"`
	Prefix     string   `json:"prefix"`
	Deleted    bool     `json:"deleted,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
}

// LoadEmbedded parses the embedded dxcc.json dataset.
func LoadEmbedded() ([]Entity, error) {
	var root struct {
		DXCC []rawEntity `json:"dxcc"`
	}
	if err := json.Unmarshal(embeddedData, &root); err != nil {
		return nil, fmt.Errorf("failed to parse embedded dxcc dataset: %w", err)
	}
	if len(root.DXCC) == 0 {
		return nil, fmt.Errorf("embedded dxcc dataset is empty")
	}

	entities := make([]Entity, 0, len(root.DXCC))
	for _, raw := range root.DXCC {
		if raw.Name == "" {
			continue
		}
		entities = append(entities, Entity{
			ID:       strconv.Itoa(raw.EntityCode),
			Name:     raw.Name,
			Prefixes: splitPrefixes(raw.Prefix),
			Aliases:  raw.Aliases,
			Deleted:  raw.Deleted,
		})
	}
	return entities, nil
}

// splitPrefixes parses a comma-separated prefix list ("K,W,N,AA-AK") into
// uppercase prefixes. Range segments keep their literal form; matching only
// ever uses the part before the dash.
func splitPrefixes(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if dash := strings.Index(p, "-"); dash > 0 {
			p = p[:dash]
		}
		out = append(out, p)
	}
	return out
}
