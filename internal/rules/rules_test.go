package rules

import (
	"errors"
	"os"
	"path/filepath"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
rules:
  - id: ipv4
    name: IPv4 address
    pattern: '\b(?:\d{1,3}\.){3}\d{1,3}\b'
    description: dotted quad
    examples:
      - 'host 10.0.0.1 is up'
    negative_examples:
      - 'version 1.2.3'
  - id: email
    name: Email
    pattern: '(?P<user>[\w.]+)@(?P<host>[\w.]+)'
`

func TestLoad(t *testing.T) {
	rs, err := Load([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, rs, 2)

	assert.Equal(t, "ipv4", rs[0].ID)
	assert.Equal(t, "IPv4 address", rs[0].Name)
	assert.Equal(t, `\b(?:\d{1,3}\.){3}\d{1,3}\b`, rs[0].Pattern)
	assert.Equal(t, "dotted quad", rs[0].Description)
	assert.Equal(t, []string{"host 10.0.0.1 is up"}, rs[0].Examples)
	assert.Equal(t, []string{"version 1.2.3"}, rs[0].NegativeExamples)

	assert.Equal(t, "email", rs[1].ID)
	assert.Empty(t, rs[1].Examples)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]byte("rules: [unclosed"))
	assert.Error(t, err)

	_, err = Load([]byte("rules: []"))
	assert.ErrorIs(t, err, ErrNoRules)

	_, err = Load([]byte("other: 1"))
	assert.ErrorIs(t, err, ErrNoRules)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	rs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, rs, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    *Rule
		wantErr string
	}{
		{
			name: "valid",
			rule: &Rule{ID: "r", Name: "R", Pattern: `a+`, Examples: []string{"baa"}},
		},
		{name: "nil", rule: nil, wantErr: "rule is nil"},
		{name: "no id", rule: &Rule{Name: "R", Pattern: "a"}, wantErr: "rule ID is required"},
		{name: "no name", rule: &Rule{ID: "r", Pattern: "a"}, wantErr: "name is required"},
		{name: "no pattern", rule: &Rule{ID: "r", Name: "R"}, wantErr: "pattern is required"},
		{name: "bad pattern", rule: &Rule{ID: "r", Name: "R", Pattern: "("}, wantErr: "invalid pattern for rule r"},
		{
			name:    "example misses",
			rule:    &Rule{ID: "r", Name: "R", Pattern: `\d`, Examples: []string{"abc"}},
			wantErr: `does not match its example "abc"`,
		},
		{
			name:    "negative example hits",
			rule:    &Rule{ID: "r", Name: "R", Pattern: `\d`, NegativeExamples: []string{"a1"}},
			wantErr: `matches its negative example "a1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rule)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateUnwrapsSyntaxError(t *testing.T) {
	err := Validate(&Rule{ID: "r", Name: "R", Pattern: "a(b"})
	var serr *syntax.Error
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, syntax.ErrMissingParen, serr.Code)
}

func TestCompile(t *testing.T) {
	rs, err := Load([]byte(sampleYAML))
	require.NoError(t, err)

	cs, err := Compile(rs)
	require.NoError(t, err)
	defer Free(cs)
	require.Len(t, cs, 2)

	assert.Equal(t, "email", cs[1].ID)
	assert.EqualValues(t, 1, cs[1].Regex.CaptureNameIndex([]byte("user")))
	m, ok := cs[1].Regex.Find([]byte("mail a@b"), 0)
	require.True(t, ok)
	assert.Equal(t, 5, m.Start)
}

func TestCompileDuplicateID(t *testing.T) {
	_, err := Compile([]*Rule{
		{ID: "x", Name: "X", Pattern: "a"},
		{ID: "x", Name: "X2", Pattern: "b"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rule ID: x")
}

func TestCompileStopsAtFirstError(t *testing.T) {
	cs, err := Compile([]*Rule{
		{ID: "ok", Name: "OK", Pattern: "a"},
		{ID: "bad", Name: "Bad", Pattern: "["},
	})
	require.Error(t, err)
	assert.Nil(t, cs)
	assert.Contains(t, err.Error(), "rule bad")
}
