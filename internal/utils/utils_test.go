package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		123456:   "123,456",
		1234567:  "1,234,567",
		-1234:    "-1,234",
		-999:     "-999",
		10000000: "10,000,000",
	}
	for n, expected := range testCases {
		if got := FormatWithCommas(n); got != expected {
			t.Errorf("FormatWithCommas(%d): expected %s, got %s", n, expected, got)
		}
	}
}

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input       string
		expected    bool
		description string
	}{
		{"apple", true, "Plain word"},
		{"ärger", true, "Non ascii letters"},
		{"self-made", true, "Separator"},
		{"", false, "Empty"},
		{"1234", false, "Only numbers"},
		{"ab$", false, "Special character"},
		{"zzz", false, "Repetitive"},
		{"zz", true, "Short repetition allowed"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidInput(tc.input), "input %q", tc.input)
		})
	}
}

func TestLengthWithin(t *testing.T) {
	assert.True(t, LengthWithin("abc", 1, 3))
	assert.False(t, LengthWithin("abcd", 1, 3))
	assert.False(t, LengthWithin("", 1, 3))
	assert.True(t, LengthWithin("äää", 1, 3))
	assert.True(t, LengthWithin("anything long", 1, 0))
}

func TestSeenFilter(t *testing.T) {
	f := NewSeenFilter("skip")
	assert.False(t, f.ShouldInclude("SKIP"))
	assert.True(t, f.ShouldInclude("word"))
	assert.False(t, f.ShouldInclude("Word"))
	assert.Equal(t, 2, f.Len())
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint32{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))

	ranks := CreateRankList(70000)
	assert.Equal(t, uint32(65536), ranks[65535])
	assert.Equal(t, uint32(70000), ranks[69999])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestTOMLRoundTripAndRecovery(t *testing.T) {
	type section struct {
		Size int  `toml:"size"`
		On   bool `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.toml")
	require.NoError(t, SaveTOMLFile(doc{Main: section{Size: 7, On: true}}, path))

	var loaded doc
	unknown, err := LoadTOMLFile(path, &loaded)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, 7, loaded.Main.Size)

	require.NoError(t, os.WriteFile(path, []byte("[main]\nsize = \"seven\"\non = true\n"), 0o644))
	_, err = LoadTOMLFile(path, &loaded)
	require.Error(t, err)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	main, ok := ExtractSection(raw, "main")
	require.True(t, ok)
	_, ok = ExtractInt64(main, "size")
	assert.False(t, ok)
	on, ok := ExtractBool(main, "on")
	assert.True(t, ok)
	assert.True(t, on)
	s, ok := ExtractString(main, "size")
	assert.True(t, ok)
	assert.Equal(t, "seven", s)
}
