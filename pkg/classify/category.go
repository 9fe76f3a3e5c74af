package classify

import (
	"fmt"
	"strings"
)

// Category is the architectural bucket a node is assigned to for layout.
type Category int

// Categories in rule priority order. Other is the fallback.
const (
	Entry Category = iota
	Frontend
	Backend
	Services
	Data
	Utilities
	Config
	Tests
	Other
)

var categoryNames = [...]string{
	Entry:     "entry",
	Frontend:  "frontend",
	Backend:   "backend",
	Services:  "services",
	Data:      "data",
	Utilities: "utilities",
	Config:    "config",
	Tests:     "tests",
	Other:     "other",
}

// All returns every category in priority order.
func All() []Category {
	return []Category{Entry, Frontend, Backend, Services, Data, Utilities, Config, Tests, Other}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse returns the category with the given name (case-insensitive).
func Parse(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Other, fmt.Errorf("unknown category %q", name)
}
