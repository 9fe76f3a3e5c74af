package classify

import (
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		id, label string
		want      Category
	}{
		{"src/main.py", "main.py", Entry},
		{"web/index.ts", "index.ts", Entry},
		{"pkg/__init__.py", "__init__.py", Entry},
		{"app", "app", Entry},
		{"src/entrypoint.go", "entrypoint.go", Entry},
		{"web/components/Button.tsx", "Button.tsx", Frontend},
		{"x/Card.vue", "Card.vue", Frontend},
		{"server/api/users.py", "users.py", Backend},
		{"x/auth_handler.go", "auth_handler.go", Backend},
		{"core/services/billing.py", "billing.py", Services},
		{"x/payment_service.py", "payment_service.py", Services},
		{"core/models/user.py", "user.py", Data},
		{"x/db.go", "db.go", Data},
		{"x/strutil.go", "strutil.go", Utilities},
		{"x/config.go", "config.go", Config},
		{"x/package.json", "package.json", Config},
		{"x/settings.toml", "settings.toml", Config},
		{"x/test_parser.py", "test_parser.py", Tests},
		{"x/parser.test.ts", "parser.test.ts", Tests},
		{"d/2", "app.test.ts", Tests},
		{"d/3", "x.testdata", Other},
		{"d/4", "y.tests", Other},
		{"README.md", "README.md", Other},
		{"", "", Other},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := graph.Node{ID: tt.id, Label: tt.label}
			if got := Classify(n); got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.id, tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if got := Classify(graph.Node{ID: "SRC/MAIN.PY", Label: "MAIN.PY"}); got != Entry {
		t.Errorf("got %v, want entry", got)
	}
}

func TestClassifyPriority(t *testing.T) {
	// entry is evaluated before tests
	n := graph.Node{ID: "tests/test_main", Label: "main.py"}
	if got := Classify(n); got != Entry {
		t.Errorf("Classify = %v, want entry", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	n := graph.Node{ID: "src/api/router.py", Label: "router.py"}
	first := Classify(n)
	for i := 0; i < 10; i++ {
		if got := Classify(n); got != first {
			t.Fatalf("call %d = %v, want %v", i, got, first)
		}
	}
}

func TestGroup(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Label: "main.py"},
		{ID: "b", Label: "utils/helper.py"},
		{ID: "c", Label: "notes.txt"},
		{ID: "d", Label: "more.txt"},
	}
	g := Group(nodes)
	if g.Count() != 4 {
		t.Fatalf("Count = %d, want 4", g.Count())
	}
	if len(g[Entry]) != 1 || g[Entry][0].ID != "a" {
		t.Errorf("entry = %v", g[Entry])
	}
	if len(g[Utilities]) != 1 || g[Utilities][0].ID != "b" {
		t.Errorf("utilities = %v", g[Utilities])
	}
	if got := g[Other]; len(got) != 2 || got[0].ID != "c" || got[1].ID != "d" {
		t.Errorf("other = %v, want input order", got)
	}
	if a := g.Assignments(); a["b"] != "utilities" {
		t.Errorf("Assignments = %v", a)
	}
}

func TestExtraRulesTakePriority(t *testing.T) {
	c := New(Rule{Category: Backend, IDContains: []string{"gateway"}})
	if got := c.Classify(graph.Node{ID: "gateway/main.go", Label: "main.go"}); got != Backend {
		t.Errorf("got %v, want backend", got)
	}
	if got := c.Classify(graph.Node{ID: "cmd/main.go", Label: "main.go"}); got != Entry {
		t.Errorf("defaults lost: got %v", got)
	}
}

func TestEmptyRuleNeverMatches(t *testing.T) {
	if (Rule{Category: Data}).Match("anything", "anything") {
		t.Error("rule without patterns matched")
	}
}

func TestParse(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(strings.ToUpper(c.String()))
		if err != nil || got != c {
			t.Errorf("Parse(%q) = %v, %v", c, got, err)
		}
	}
	if _, err := Parse("frontend-ish"); err == nil {
		t.Error("expected error for unknown category")
	}
	if s := Category(42).String(); s != "Category(42)" {
		t.Errorf("String = %q", s)
	}
}

func TestParseRules(t *testing.T) {
	in := `
[[rule]]
category = "Backend"
id_contains = ["Gateway"]

[[rule]]
category = "config"
label_suffix = [".ini"]
`
	rules, err := ParseRules(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules", len(rules))
	}
	if rules[0].Category != Backend || rules[0].IDContains[0] != "gateway" {
		t.Errorf("rule 0 = %+v", rules[0])
	}
	if !rules[1].Match("x/setup.ini", "setup.ini") {
		t.Error("suffix rule did not match")
	}
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", "[[rule]\ncategory="},
		{"unknown category", "[[rule]]\ncategory = \"middleware\""},
		{"unknown key", "[[rule]]\ncategory = \"data\"\npath_contains = [\"x\"]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules(strings.NewReader(tt.in))
			if !errs.Is(err, errs.ErrCodeInvalidRules) {
				t.Errorf("got %v, want INVALID_RULES", err)
			}
		})
	}
}

func TestNewFromFile(t *testing.T) {
	c, err := NewFromFile("")
	if err != nil || len(c.Rules()) != len(DefaultRules) {
		t.Fatalf("NewFromFile(\"\") = %v, %v", c, err)
	}
	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}
