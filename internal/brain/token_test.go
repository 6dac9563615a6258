package brain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	op := Operand(2.5)
	v, ok := op.Operand()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	_, ok = op.Symbol()
	assert.False(t, ok)
	assert.Equal(t, "2.5", op.String())

	sym := Symbol("√")
	s, ok := sym.Symbol()
	assert.True(t, ok)
	assert.Equal(t, "√", s)
	_, ok = sym.Operand()
	assert.False(t, ok)
	assert.Equal(t, "√", sym.String())
}

func TestProgramOf(t *testing.T) {
	p, err := ProgramOf([]any{1, 2.5, float32(0.5), int64(3), json.Number("4"), "+"})
	require.NoError(t, err)
	assert.Equal(t, Program{Operand(1), Operand(2.5), Operand(0.5), Operand(3), Operand(4), Symbol("+")}, p)

	type celsius float32
	p, err = ProgramOf([]any{int8(-1), int32(2), "+", uint8(3), uint(4), uint64(5), celsius(1.5)})
	require.NoError(t, err)
	assert.Equal(t, Program{Operand(-1), Operand(2), Symbol("+"), Operand(3), Operand(4), Operand(5), Operand(1.5)}, p)

	for _, bad := range []any{true, nil, []any{1}, map[string]any{}, struct{}{}} {
		_, err := ProgramOf([]any{1, "+", bad})
		assert.ErrorIs(t, err, ErrInvalidToken, "%#v", bad)
	}
}

func TestProgramJSON(t *testing.T) {
	p := Program{Operand(2), Symbol("+"), Operand(0.5), Symbol("="), Symbol("M")}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[2, "+", 0.5, "=", "M"]`, string(data))

	var decoded Program
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}

func TestProgramJSONNonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := json.Marshal(Program{Operand(1), Symbol("+"), Operand(v)})
		assert.ErrorIs(t, err, ErrInvalidToken, "%v", v)
	}

	e, err := New()
	require.NoError(t, err)
	e.SetAccumulator(math.Inf(1))
	_, err = json.Marshal(e.Program())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseOperand(t *testing.T) {
	good := map[string]float64{"0": 0, "12.5": 12.5, "-3": -3, "1e3": 1000, "0.": 0}
	for s, want := range good {
		v, ok := ParseOperand(s)
		assert.True(t, ok, s)
		assert.Equal(t, want, v, s)
	}
	for _, s := range []string{"", "inf", "-Inf", "+infinity", "NaN", "nan", "1e999", "π", "1e"} {
		_, ok := ParseOperand(s)
		assert.False(t, ok, s)
	}
}

func TestProgramJSONEmpty(t *testing.T) {
	var p Program
	require.NoError(t, json.Unmarshal([]byte(`[]`), &p))
	assert.Empty(t, p)
}

func TestProgramJSONInvalid(t *testing.T) {
	tests := map[string]string{
		"bool":   `[1, "+", true]`,
		"null":   `[null]`,
		"object": `[{"a": 1}]`,
		"nested": `[[1]]`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			p := Program{Symbol("keep")}
			err := json.Unmarshal([]byte(input), &p)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, Program{Symbol("keep")}, p)
		})
	}

	var p Program
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &p))
}

func TestSymbols(t *testing.T) {
	syms := Symbols()
	assert.Len(t, syms, 19)
	for _, sym := range syms {
		_, ok := Lookup(sym)
		assert.True(t, ok, sym)
	}

	op, ok := Lookup(SymMemory)
	require.True(t, ok)
	assert.Equal(t, Variable{Name: "M"}, op)

	_, ok = Lookup("@")
	assert.False(t, ok)
}
