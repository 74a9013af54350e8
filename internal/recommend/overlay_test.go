package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlay_MissingFileIsNoOp(t *testing.T) {
	o, err := LoadOverlay(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, o)
	// A nil overlay applies cleanly.
	cands := []Candidate{{Slug: "a"}}
	assert.Equal(t, cands, o.Apply(cands))
}

func TestLoadOverlay_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := LoadOverlay(path)
	assert.Error(t, err)
}

func TestOverlay_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`propsage:
  difficulty: advanced
  businessImpact: 9
  techComplexity: 8
stockpeer:
  category: data
`), 0o644))

	o, err := LoadOverlay(path)
	require.NoError(t, err)

	in := []Candidate{
		{Slug: "propsage", Category: "web", BusinessImpact: 1},
		{Slug: "stockpeer", Category: "misc", Difficulty: DifficultyIntermediate},
		{Slug: "untouched", BusinessImpact: 3},
	}
	out := o.Apply(in)

	assert.Equal(t, DifficultyAdvanced, out[0].Difficulty)
	assert.Equal(t, 9, out[0].BusinessImpact)
	assert.Equal(t, 8, out[0].TechComplexity)
	assert.Equal(t, "web", out[0].Category) // not patched, kept

	assert.Equal(t, "data", out[1].Category)
	assert.Equal(t, DifficultyIntermediate, out[1].Difficulty) // kept

	assert.Equal(t, in[2], out[2])
	// Input slice untouched.
	assert.Equal(t, 1, in[0].BusinessImpact)
}
