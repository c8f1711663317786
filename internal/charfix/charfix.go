// Package charfix repairs mis-decoded text and standardizes color hashes
// using immutable substitution tables. The tables are plain configuration
// handed to a Fixer at construction; nothing in the package is mutable
// process-wide state.
package charfix

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Tables is the substitution configuration for a Fixer.
type Tables struct {
	// Mojibake maps corrupted byte sequences to their repaired form.
	Mojibake map[string]string `yaml:"mojibake"`
	// Slovak maps whole corrupted phrases to their restored spelling.
	// Phrases are matched longest first.
	Slovak map[string]string `yaml:"slovak"`
	// Colors maps deprecated color hashes to their standardized form.
	Colors map[string]string `yaml:"colors"`
	// Allowed lists non-ASCII runes that are legitimate and must not be
	// flagged as suspicious.
	Allowed string `yaml:"allowed"`
}

// Defaults returns the built-in tables.
func Defaults() Tables {
	return Tables{
		Mojibake: defaultMojibake,
		Slovak:   defaultSlovak,
		Colors:   defaultColors,
		Allowed:  defaultAllowed,
	}
}

// Load reads tables from a YAML file. Entries extend the defaults; a file
// entry for an existing key overrides it.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, eris.Wrapf(err, "charfix: read %s", path)
	}
	var file Tables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Tables{}, eris.Wrapf(err, "charfix: parse %s", path)
	}

	merged := Defaults()
	merged.Mojibake = mergeMap(merged.Mojibake, file.Mojibake)
	merged.Slovak = mergeMap(merged.Slovak, file.Slovak)
	merged.Colors = mergeMap(merged.Colors, file.Colors)
	merged.Allowed += file.Allowed
	return merged, nil
}

func mergeMap(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Fixer applies a set of Tables. Safe for concurrent use.
type Fixer struct {
	phrases *strings.Replacer
	text    *strings.Replacer
	colors  map[string]string
	allowed map[rune]bool
}

// NewFixer compiles the tables into a Fixer.
func NewFixer(t Tables) *Fixer {
	pairs := make([]string, 0, len(t.Mojibake)*2)
	for from, to := range t.Mojibake {
		pairs = append(pairs, from, to)
	}
	allowed := make(map[rune]bool, len(t.Allowed))
	for _, r := range t.Allowed {
		allowed[r] = true
	}
	return &Fixer{
		phrases: phraseReplacer(t.Slovak),
		text:    strings.NewReplacer(pairs...),
		colors:  t.Colors,
		allowed: allowed,
	}
}

// phraseReplacer orders the pairs longest key first so a phrase that
// contains another phrase wins.
func phraseReplacer(phrases map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, phrases[k])
	}
	return strings.NewReplacer(pairs...)
}

// FixText restores known corrupted phrases, then repairs mojibake, and
// reports whether anything changed.
func (f *Fixer) FixText(s string) (string, bool) {
	fixed := f.text.Replace(f.phrases.Replace(s))
	return fixed, fixed != s
}

// FixColor standardizes a color hash and reports whether it changed.
func (f *Fixer) FixColor(c string) (string, bool) {
	if std, ok := f.colors[strings.ToLower(c)]; ok {
		return std, true
	}
	return c, false
}

// Suspicious returns the distinct non-ASCII runes in s that the tables do
// not recognize as legitimate, in order of first appearance. A non-empty
// result means the string needs manual review.
func (f *Fixer) Suspicious(s string) []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, r := range s {
		if r < 128 || f.allowed[r] || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
