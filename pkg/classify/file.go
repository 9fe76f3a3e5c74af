package classify

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/repograph/pkg/errors"
)

// ruleFile is the TOML form of a rule list:
//
//	[[rule]]
//	category = "backend"
//	id_contains = ["gateway"]
//	label_contains = ["endpoint"]
type ruleFile struct {
	Rules []fileRule `toml:"rule"`
}

type fileRule struct {
	Category      string   `toml:"category"`
	IDContains    []string `toml:"id_contains"`
	LabelContains []string `toml:"label_contains"`
	LabelEquals   []string `toml:"label_equals"`
	LabelSuffix   []string `toml:"label_suffix"`
}

// ParseRules decodes a TOML rule list. Patterns are lower-cased so they
// compare against lower-cased IDs and labels.
func ParseRules(r io.Reader) ([]Rule, error) {
	var f ruleFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidRules, err, "decode rules")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidRules, "unknown rule key %q", undec[0].String())
	}

	rules := make([]Rule, 0, len(f.Rules))
	for i, fr := range f.Rules {
		cat, err := Parse(fr.Category)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidRules, err, "rule %d", i+1)
		}
		rules = append(rules, Rule{
			Category:      cat,
			IDContains:    lower(fr.IDContains),
			LabelContains: lower(fr.LabelContains),
			LabelEquals:   lower(fr.LabelEquals),
			LabelSuffix:   lower(fr.LabelSuffix),
		})
	}
	return rules, nil
}

// LoadRules reads a TOML rule file.
func LoadRules(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRules(f)
}

// NewFromFile returns a classifier whose file rules take priority over
// the defaults. An empty path yields the default classifier.
func NewFromFile(path string) (*Classifier, error) {
	if path == "" {
		return New(), nil
	}
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return New(rules...), nil
}

func lower(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
