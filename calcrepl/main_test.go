package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjl/gio-calc/internal/brain"
)

func session(t *testing.T, input string) string {
	t.Helper()
	b, err := brain.New()
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, run(b, strings.NewReader(input), &out))
	return out.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "left to right",
			input: "2 + 3 * 4 =\n",
			want:  "2 + 3 × 4 = 20\n",
		},
		{
			name:  "partial",
			input: "2 +\n3 -\n",
			want:  "2 + ...\n2 + 3 − ...\n",
		},
		{
			name:  "unary",
			input: "16 sqrt √\n",
			want:  "√(√(16)) = 2\n",
		},
		{
			name:  "comments and blanks",
			input: "# nothing\n\n7\n",
			want:  "7 = 7\n",
		},
		{
			name:  "unknown symbol",
			input: "5 @\n",
			want:  "5 = 5\n",
		},
		{
			name:  "undo",
			input: "9 - 4 =\n:undo\n:undo\n",
			want:  "9 − 4 = 5\n9 − ...\n9 − ...\n",
		},
		{
			name:  "bad command",
			input: ":frobnicate\n:\n",
			want:  "error: unknown command \"frobnicate\"\nerror: missing command\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session(t, tt.input))
		})
	}
}

func TestNonFiniteLiterals(t *testing.T) {
	out := session(t, "inf\n:program\nnan 2\n:program\n")
	assert.Equal(t, "0 = 0\n[\"inf\"]\n2 = 2\n[\"inf\",\"nan\",2]\n", out)
}

func TestStore(t *testing.T) {
	out := session(t, "M + 1 =\n:store M\n:vars\n:clear\n:vars\n")
	assert.Equal(t, "M + 1 = 1\nM + 1 = 2\nM = 1\n0 = 0\n", out)
}

func TestProgramCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "prog.json")
	require.NoError(t, os.WriteFile(file, []byte(`[8, "÷", 2, "="]`), 0o644))

	out := session(t, "1 +\n:load "+file+"\n:program\n")
	assert.Equal(t, "1 + ...\n8 ÷ 2 = 4\n[8,\"÷\",2,\"=\"]\n", out)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[1, true]`), 0o644))

	out := session(t, "3\n:load "+file+"\n:load\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "3 = 3", lines[0])
	assert.Contains(t, lines[1], brain.ErrInvalidToken.Error())
	assert.Equal(t, "error: usage: :load FILE", lines[2])
}
