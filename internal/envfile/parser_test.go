package envfile_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwayapp/henvdall/internal/envfile"
	"github.com/railwayapp/henvdall/internal/filesystems"
)

func entries(m *envfile.EntryMap) []envfile.Entry {
	var out []envfile.Entry
	for _, entry := range m.All() {
		out = append(out, entry)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []envfile.Entry
	}{
		{
			name:    "plain values",
			content: "DATABASE_URL=postgresql://localhost/db\nAPI_KEY=secret123\nPORT=3000",
			expected: []envfile.Entry{
				{Key: "DATABASE_URL", Value: "postgresql://localhost/db"},
				{Key: "API_KEY", Value: "secret123"},
				{Key: "PORT", Value: "3000"},
			},
		},
		{
			name:     "trailing comment",
			content:  "API_KEY=secret123  # (url)",
			expected: []envfile.Entry{{Key: "API_KEY", Value: "secret123", Comment: "(url)"}},
		},
		{
			name:     "single quotes stripped",
			content:  "SINGLE_QUOTED='value with spaces'",
			expected: []envfile.Entry{{Key: "SINGLE_QUOTED", Value: "value with spaces"}},
		},
		{
			name:     "double quotes stripped",
			content:  `DOUBLE="hello world"`,
			expected: []envfile.Entry{{Key: "DOUBLE", Value: "hello world"}},
		},
		{
			name:     "only one pair of quotes stripped",
			content:  `NESTED=""inner""`,
			expected: []envfile.Entry{{Key: "NESTED", Value: `"inner"`}},
		},
		{
			name:     "mismatched quotes kept",
			content:  `MIXED="value'`,
			expected: []envfile.Entry{{Key: "MIXED", Value: `"value'`}},
		},
		{
			name:     "empty value",
			content:  "EMPTY=",
			expected: []envfile.Entry{{Key: "EMPTY", Value: ""}},
		},
		{
			name:     "empty comment is absent",
			content:  "KEY=value #",
			expected: []envfile.Entry{{Key: "KEY", Value: "value"}},
		},
		{
			name:     "whitespace around separator",
			content:  "  KEY  =  value  ",
			expected: []envfile.Entry{{Key: "KEY", Value: "value"}},
		},
		{
			name:    "comments, blanks and malformed lines skipped",
			content: "# header\n\n   \nexport FOO=bar\n1BAD=x\nnot a line\nGOOD=yes\n",
			expected: []envfile.Entry{
				{Key: "GOOD", Value: "yes"},
			},
		},
		{
			name:     "hash inside quotes starts a comment",
			content:  `COLOR="#fff"`,
			expected: []envfile.Entry{{Key: "COLOR", Value: `"`, Comment: `fff"`}},
		},
		{
			name:    "duplicate keeps first position and last value",
			content: "A=1\nB=2\nA=3",
			expected: []envfile.Entry{
				{Key: "A", Value: "3"},
				{Key: "B", Value: "2"},
			},
		},
		{
			name:     "windows line endings",
			content:  "KEY=value\r\n",
			expected: []envfile.Entry{{Key: "KEY", Value: "value"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entries(envfile.Parse([]byte(tt.content)))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	mfs := filesystems.NewMemoryFS()

	m, err := envfile.ParseFile(mfs, "does/not/exist/.env")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParseFile(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env.example", []byte("PORT=3000 # (int)\nAPI_URL=https://api.example.com # (url)\n"))

	m, err := envfile.ParseFile(mfs, ".env.example")
	require.NoError(t, err)
	assert.Equal(t, []string{"PORT", "API_URL"}, m.Keys())

	entry, ok := m.Get("PORT")
	require.True(t, ok)
	assert.Equal(t, "3000", entry.Value)
	assert.Equal(t, "(int)", entry.Comment)
	assert.False(t, m.Has("MISSING"))
}

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		key, value string
		expected   string
	}{
		{"KEY", "value with spaces", `KEY="value with spaces"`},
		{"KEY", "value", "KEY=value"},
		{"KEY", "", "KEY="},
		{"KEY", "a#b", `KEY="a#b"`},
		{"KEY", "$HOME", `KEY="$HOME"`},
		{"KEY", `C:\path`, `KEY="C:\path"`},
		{"URL", "https://example.com/?a=1&b=2", "URL=https://example.com/?a=1&b=2"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, envfile.FormatEntry(tt.key, tt.value))
		})
	}
}

func TestFormatEntry_StylisticQuotesNotPreserved(t *testing.T) {
	entry, ok := envfile.ParseLine(`KEY="simple"`)
	require.True(t, ok)
	assert.Equal(t, "KEY=simple", envfile.FormatEntry(entry.Key, entry.Value))
}

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"simple", true},
		{"value with spaces", true},
		{"", true},
		{"$HOME/bin", true},
		{"a#b", false},
		{`say "hi"`, true},
		{`"quoted"`, false},
		{"\tindented", false},
		{"x\nPORT=9999", false},
		{"a\rb", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, envfile.RoundTrips("KEY", tt.value))
		})
	}
}
