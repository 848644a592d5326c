package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	env := Parse("A=1\nB=hello=world\nC=\n")

	assert.Equal(t, 3, env.Length())

	v, _ := env.Get("A")
	assert.Equal(t, "1", v)

	// Values may contain further '=' characters; only the first one splits.
	v, _ = env.Get("B")
	assert.Equal(t, "hello=world", v)

	v, ok := env.Get("C")
	assert.Equal(t, "", v)
	assert.True(t, ok)
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	env := Parse("# a comment\n\n   \nA=1\n")

	assert.Equal(t, 1, env.Length())
	assert.True(t, env.Exists("A"))
}

func TestParseDropsMalformedLines(t *testing.T) {
	t.Parallel()

	env := Parse("NOEQUALS\n=value-with-no-key\nA=1\n")

	assert.Equal(t, 1, env.Length())
	assert.False(t, env.Exists("NOEQUALS"))
	assert.False(t, env.Exists(""))
}

func TestParseLastDuplicateWins(t *testing.T) {
	t.Parallel()

	env := Parse("A=first\nA=second\n")

	v, _ := env.Get("A")
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, env.Length())
}

func TestParseNeverErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "\n\n\n", "####", "===", "\x00\x01\x02", "key only"} {
		assert.NotNil(t, Parse(text))
	}
}

func TestSerializeIsKeySorted(t *testing.T) {
	t.Parallel()

	env := New()
	require.NoError(t, env.Set("b", "2"))
	require.NoError(t, env.Set("a", "1"))

	assert.Equal(t, "a=1\nb=2\n", env.Serialize())
}

func TestSerializeEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", New().Serialize())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	env := New()
	require.NoError(t, env.Set("API_KEY", "xyz"))
	require.NoError(t, env.Set("EMPTY", ""))
	require.NoError(t, env.Set("TRICKY", "a=b=c"))

	assert.Equal(t, env.Dump(), Parse(env.Serialize()).Dump())
}

func TestSetInvalidKey(t *testing.T) {
	t.Parallel()

	env := New()

	assert.ErrorIs(t, env.Set("", "value"), ErrInvalidKey)
	assert.ErrorIs(t, env.Set("A=B", "value"), ErrInvalidKey)
	assert.Equal(t, 0, env.Length())
}

func TestRemove(t *testing.T) {
	t.Parallel()

	env := FromSlice([]string{"FOO=bar"})

	assert.True(t, env.Remove("FOO"))
	assert.False(t, env.Exists("FOO"))

	// Removing an absent key is a no-op.
	assert.False(t, env.Remove("FOO"))
}

func TestMergeInjectedPairsWin(t *testing.T) {
	t.Parallel()

	inherited := FromSlice([]string{"API_KEY=old", "PATH=/bin"})
	stored := FromSlice([]string{"API_KEY=new"})

	inherited.Merge(stored)

	v, _ := inherited.Get("API_KEY")
	assert.Equal(t, "new", v)

	v, _ = inherited.Get("PATH")
	assert.Equal(t, "/bin", v)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	before := FromSlice([]string{"A=1", "B=2", "C=3"})
	after := FromSlice([]string{"A=1", "B=22", "D=4"})

	diff := after.Diff(before)

	assert.Equal(t, map[string]string{"D": "4"}, diff.Added)
	assert.Equal(t, map[string]DiffPair{"B": {Old: "2", New: "22"}}, diff.Changed)
	assert.Equal(t, map[string]struct{}{"C": {}}, diff.Removed)
	assert.False(t, diff.Empty())
}

func TestSplit(t *testing.T) {
	t.Parallel()

	k, v, ok := Split("KEY=value=more")
	assert.True(t, ok)
	assert.Equal(t, "KEY", k)
	assert.Equal(t, "value=more", v)

	_, _, ok = Split("novalue")
	assert.False(t, ok)

	_, _, ok = Split("=leading")
	assert.False(t, ok)
}
