// Package catalog holds the ordered, immutable list of test cases a report
// is built from, together with each case's screenshot name patterns and the
// static table of screenshots it is expected to produce.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devicelab-dev/uireport/pkg/core"
	"gopkg.in/yaml.v3"
)

// TestCase describes one browser scenario. Values are never mutated once
// placed in a Catalog.
type TestCase struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	Description    string             `yaml:"description"`
	Steps          []string           `yaml:"steps"`
	ExpectedResult string             `yaml:"expectedResult"`
	Exception      core.ExceptionKind `yaml:"exception,omitempty"`

	// Patterns are substrings matched against screenshot file names.
	Patterns []string `yaml:"patterns"`
	// ExpectedScreenshots are listed when no screenshot could be found.
	ExpectedScreenshots []string `yaml:"expectedScreenshots"`
	// Notes is optional Markdown rendered under the case in HTML reports.
	Notes string `yaml:"notes,omitempty"`
}

func (tc TestCase) clone() TestCase {
	tc.Steps = append([]string(nil), tc.Steps...)
	tc.Patterns = append([]string(nil), tc.Patterns...)
	tc.ExpectedScreenshots = append([]string(nil), tc.ExpectedScreenshots...)
	return tc
}

// Duplicate records an ID that was defined more than once. The later
// definition replaced the earlier one.
type Duplicate struct {
	ID           string
	ReplacedName string
	WinningName  string
}

func (d Duplicate) String() string {
	return fmt.Sprintf("test case %s defined more than once (%q replaced by %q)", d.ID, d.ReplacedName, d.WinningName)
}

// Catalog is an ordered set of test cases keyed by ID.
type Catalog struct {
	cases      []TestCase
	byID       map[string]int
	duplicates []Duplicate
}

// New builds a catalog. When an ID repeats, the last definition wins and
// keeps the position of the first; the collision is recorded in Duplicates.
func New(cases ...TestCase) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(cases))}
	for _, tc := range cases {
		if i, ok := c.byID[tc.ID]; ok {
			c.duplicates = append(c.duplicates, Duplicate{
				ID:           tc.ID,
				ReplacedName: c.cases[i].Name,
				WinningName:  tc.Name,
			})
			c.cases[i] = tc.clone()
			continue
		}
		c.byID[tc.ID] = len(c.cases)
		c.cases = append(c.cases, tc.clone())
	}
	return c
}

// Len returns the number of distinct test cases.
func (c *Catalog) Len() int { return len(c.cases) }

// Cases returns the test cases in catalog order.
func (c *Catalog) Cases() []TestCase {
	out := make([]TestCase, len(c.cases))
	for i, tc := range c.cases {
		out[i] = tc.clone()
	}
	return out
}

// IDs returns test case IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.cases))
	for i, tc := range c.cases {
		ids[i] = tc.ID
	}
	return ids
}

// Get looks up a test case by ID.
func (c *Catalog) Get(id string) (TestCase, bool) {
	i, ok := c.byID[id]
	if !ok {
		return TestCase{}, false
	}
	return c.cases[i].clone(), true
}

// Patterns returns the screenshot name patterns for id, or nil.
func (c *Catalog) Patterns(id string) []string {
	tc, ok := c.Get(id)
	if !ok {
		return nil
	}
	return tc.Patterns
}

// ExpectedScreenshotNames returns the fixed-order list of screenshot file
// names the case is expected to produce, or nil for an unknown id.
func (c *Catalog) ExpectedScreenshotNames(id string) []string {
	tc, ok := c.Get(id)
	if !ok {
		return nil
	}
	return tc.ExpectedScreenshots
}

// Duplicates lists IDs that were defined more than once.
func (c *Catalog) Duplicates() []Duplicate {
	return append([]Duplicate(nil), c.duplicates...)
}

// Validate returns every integrity problem found, joined, or nil.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.cases) == 0 {
		errs = append(errs, errors.New("catalog is empty"))
	}
	for i, tc := range c.cases {
		if tc.ID == "" {
			errs = append(errs, fmt.Errorf("case #%d: missing id", i+1))
			continue
		}
		if len(tc.Patterns) == 0 {
			errs = append(errs, fmt.Errorf("%s: no screenshot patterns", tc.ID))
		}
		if len(tc.ExpectedScreenshots) == 0 {
			errs = append(errs, fmt.Errorf("%s: no expected screenshot names", tc.ID))
		}
	}
	for _, d := range c.duplicates {
		errs = append(errs, errors.New(d.String()))
	}
	return errors.Join(errs...)
}

// file is the on-disk layout of catalog.yaml.
type file struct {
	Cases []TestCase `yaml:"cases"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided catalog file
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("%s: no cases defined", path)
	}

	return New(f.Cases...), nil
}

// LoadFromDir looks for catalog.yaml or catalog.yml in dir and falls back
// to the built-in catalog when neither exists.
func LoadFromDir(dir string) (*Catalog, error) {
	for _, name := range []string{"catalog.yaml", "catalog.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Marshal encodes the catalog in the catalog.yaml format.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(file{Cases: c.Cases()})
}
