package store

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"itemd/internal/errors"
)

// SeedItem is a sample item template installed by the lazy seed.
// Ids are assigned at seed time from the store's live counter.
type SeedItem struct {
	Name  string `toml:"name" json:"name"`
	Value int    `toml:"value" json:"value"`
}

// seedFile is the on-disk shape of a seed file:
//
//	[[items]]
//	name = "First Item"
//	value = 100
type seedFile struct {
	Items []SeedItem `toml:"items"`
}

// DefaultSeed returns the built-in sample items
func DefaultSeed() []SeedItem {
	return []SeedItem{
		{Name: "First Item", Value: 100},
		{Name: "Second Item", Value: 200},
	}
}

// LoadSeedFile reads sample items from a TOML file. Entries are held to
// the same name bound the API enforces, so a seeded store never carries
// an item a client could not have created.
func LoadSeedFile(path string) ([]SeedItem, error) {
	var sf seedFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, errors.New(errors.InvalidInput, fmt.Sprintf("failed to parse seed file %s", path), err)
	}

	for i, it := range sf.Items {
		if it.Name == "" {
			return nil, errors.New(errors.InvalidInput, fmt.Sprintf("seed item %d has an empty name", i+1), nil)
		}
		if len(it.Name) > MaxNameBytes {
			return nil, errors.New(errors.InvalidInput,
				fmt.Sprintf("seed item %d: name exceeds %d bytes", i+1, MaxNameBytes), nil)
		}
	}
	return sf.Items, nil
}
