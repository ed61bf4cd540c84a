package ingestion

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfilesYAML is the on-disk broker profile file:
//
//	profiles:
//	  webull:
//	    date: Filled Time
//	    ...
type ProfilesYAML struct {
	Profiles map[string]ColumnMapping `yaml:"profiles"`
}

type Profiles map[string]ColumnMapping

// DefaultProfiles cover the exports seen most often.
func DefaultProfiles() Profiles {
	return Profiles{
		"fidelity": {
			Date:             "Order Time",
			Symbol:           "Symbol",
			Action:           "Action",
			Price:            "Status",
			Quantity:         "Amount",
			Time:             "Order Time",
			DateTimeCombined: true,
		},
		"fidelity-history": {
			Date:     "Run Date",
			Symbol:   "Symbol",
			Action:   "Action",
			Price:    "Price ($)",
			Quantity: "Quantity",
			Fees:     "Fees ($)",
		},
	}
}

// LoadProfiles reads a YAML profile file and layers it over DefaultProfiles.
// An empty path returns the defaults.
func LoadProfiles(path string) (Profiles, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadProfiles: failed to read %s: %w", path, err)
	}

	var file ProfilesYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("LoadProfiles: failed to unmarshal %s: %w", path, err)
	}

	for name, mapping := range file.Profiles {
		if err := mapping.Validate(nil); err != nil {
			return nil, fmt.Errorf("LoadProfiles: profile %q: %w", name, err)
		}

		profiles[strings.ToLower(name)] = mapping
	}

	return profiles, nil
}

func (p Profiles) Lookup(name string) (ColumnMapping, error) {
	mapping, found := p[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return ColumnMapping{}, fmt.Errorf("%w: %q", UnknownProfileErr, name)
	}

	return mapping, nil
}

func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
