package roster

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func validTemplate() Template {
	return Template{
		Name:   "Goblin",
		Health: Range{Min: 10, Max: 20},
		Attack: Range{Min: 2, Max: 5},
		Reward: Range{Min: 1, Max: 8},
	}
}

func TestRangeRollInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bounds := Range{Min: 4, Max: 6}
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		roll := bounds.Roll(rng)
		if roll < 4 || roll > 6 {
			t.Fatalf("roll %d outside [4,6]", roll)
		}
		seen[roll] = true
	}
	for v := 4; v <= 6; v++ {
		if !seen[v] {
			t.Errorf("value %d never rolled in 2000 draws", v)
		}
	}
}

func TestRangeRollDegeneratesToMin(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if got := (Range{Min: 7, Max: 7}).Roll(rng); got != 7 {
		t.Fatalf("single-point range should return 7, got %d", got)
	}
	if got := (Range{Min: 9, Max: 2}).Roll(rng); got != 9 {
		t.Fatalf("inverted range should return min, got %d", got)
	}
}

func TestRangeValidate(t *testing.T) {
	cases := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"valid", Range{Min: 1, Max: 5}, false},
		{"single point", Range{Min: 3, Max: 3}, false},
		{"negative min", Range{Min: -1, Max: 5}, true},
		{"inverted", Range{Min: 6, Max: 2}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestTemplateValidate(t *testing.T) {
	if err := validTemplate().Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	nameless := validTemplate()
	nameless.Name = ""
	if nameless.Validate() == nil {
		t.Fatalf("nameless template should be rejected")
	}

	fragile := validTemplate()
	fragile.Health = Range{Min: 0, Max: 4}
	if fragile.Validate() == nil {
		t.Fatalf("zero-health template should be rejected")
	}
}

func TestValidateRejectsEmptyAndDuplicates(t *testing.T) {
	if Validate(nil) == nil {
		t.Fatalf("empty roster should be rejected")
	}
	if Validate([]Template{validTemplate(), validTemplate()}) == nil {
		t.Fatalf("duplicate names should be rejected")
	}
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("built-in defaults must validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enemies.json")
	content := `[
		{"name": "Goblin", "health": {"min": 10, "max": 20}, "attack": {"min": 2, "max": 5}, "reward": {"min": 1, "max": 8}},
		{"name": "Wraith", "health": {"min": 15, "max": 25}, "attack": {"min": 4, "max": 9}, "reward": {"min": 10, "max": 20}}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	templates, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[1].Name != "Wraith" {
		t.Fatalf("file order should be preserved, got %q", templates[1].Name)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("missing file should error")
	}

	malformed := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(malformed, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(malformed); err == nil {
		t.Fatalf("malformed json should error")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(empty); err == nil {
		t.Fatalf("empty roster file should error")
	}
}
