package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset is the on-disk envelope around a spec: one JSON file per asset.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !identifierPattern.MatchString(a.Identifier.String()) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// Catalog is a read-only set of assets loaded from a directory at startup.
// Iteration order is deterministic (sorted by id) so positions handed out
// from a catalog are stable across runs of the same asset set.
type Catalog[T ValidatingSpec] struct {
	ids     []Identifier
	records map[Identifier]T
}

// LoadCatalog reads every *.json file under path, validates each asset, and
// rejects duplicate ids.
func LoadCatalog[T ValidatingSpec](path string) (*Catalog[T], error) {
	c := &Catalog[T]{
		records: map[Identifier]T{},
	}

	err := filepath.Walk(path, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(p) != ".json" {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filepath.Base(p), err)
		}

		var asset Asset[T]
		if err := json.Unmarshal(data, &asset); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(p), err)
		}
		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(p), err)
		}

		if _, ok := c.records[asset.Identifier]; ok {
			return fmt.Errorf("duplicate key detected: %s", asset.Identifier)
		}
		c.records[asset.Identifier] = asset.Spec
		c.ids = append(c.ids, asset.Identifier)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })

	return c, nil
}

func (c *Catalog[T]) Len() int {
	return len(c.ids)
}

// Get returns the spec for id, or the zero value when absent.
func (c *Catalog[T]) Get(id Identifier) T {
	return c.records[id]
}

// Ids returns every asset id in sorted order.
func (c *Catalog[T]) Ids() []Identifier {
	return c.ids
}
