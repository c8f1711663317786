package charfix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixText_RepairsMojibake(t *testing.T) {
	t.Parallel()

	f := NewFixer(Defaults())

	got, changed := f.FixText("MÃ¤hren")
	assert.True(t, changed)
	assert.Equal(t, "Mähren", got)

	got, changed = f.FixText("Bratislava")
	assert.False(t, changed)
	assert.Equal(t, "Bratislava", got)
}

func TestFixText_MultipleOccurrences(t *testing.T) {
	t.Parallel()

	f := NewFixer(Defaults())

	got, changed := f.FixText("FÃ¼rstentum Ãsterreich")
	assert.True(t, changed)
	assert.Equal(t, "Fürstentum Österreich", got)
}

func TestFixText_RestoresSlovakPhrases(t *testing.T) {
	t.Parallel()

	f := NewFixer(Defaults())

	got, changed := f.FixText("Ke~marok")
	assert.True(t, changed)
	assert.Equal(t, "Kežmarok", got)

	got, changed = f.FixText("Koaice a Preaov")
	assert.True(t, changed)
	assert.Equal(t, "Košice a Prešov", got)

	// The longer phrase wins over the one it contains.
	got, changed = f.FixText("Starï¿½ =ubovHa")
	assert.True(t, changed)
	assert.Equal(t, "Stará Ľubovňa", got)
}

func TestFixColor(t *testing.T) {
	t.Parallel()

	f := NewFixer(Defaults())

	got, changed := f.FixColor("#000000")
	assert.True(t, changed)
	assert.Equal(t, "#333333", got)

	// Lookup is case-insensitive.
	got, changed = f.FixColor("#8F1B11")
	assert.True(t, changed)
	assert.Equal(t, "#a10001", got)

	got, changed = f.FixColor("#123456")
	assert.False(t, changed)
	assert.Equal(t, "#123456", got)
}

func TestSuspicious(t *testing.T) {
	t.Parallel()

	f := NewFixer(Defaults())

	// Allowed runes (German, Slovak) are not suspicious.
	assert.Empty(t, f.Suspicious("Kráľovstvo Mähren"))

	// Unknown non-ASCII runes are reported once each, in order.
	runes := f.Suspicious("aÂ bÂ c☃")
	assert.Equal(t, []rune{'Â', ' ', '☃'}, runes)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tables.yaml")
	content := "mojibake:\n  \"zz\": \"y\"\nslovak:\n  \"Tren\\rï¿½n\": \"Trenčín\"\ncolors:\n  \"#000000\": \"#101010\"\nallowed: \"Ω\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tables, err := Load(path)
	require.NoError(t, err)

	f := NewFixer(tables)

	// New entry works, defaults survive.
	got, _ := f.FixText("zz MÃ¤hren")
	assert.Equal(t, "y Mähren", got)

	// File phrases extend the Slovak table.
	got, _ = f.FixText("Tren\rï¿½n a Ke~marok")
	assert.Equal(t, "Trenčín a Kežmarok", got)

	// File entry overrides the default color mapping.
	got, changed := f.FixColor("#000000")
	assert.True(t, changed)
	assert.Equal(t, "#101010", got)

	// Extended allowed set.
	assert.Empty(t, f.Suspicious("Ω"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
