package brain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// ErrInvalidToken is returned when a program entry is neither a number nor a symbol.
var ErrInvalidToken = errors.New("invalid program token")

// Token is a single recorded program step: an operand or an operation symbol.
type Token struct {
	operand   float64
	symbol    string
	isOperand bool
}

// Operand creates an operand token.
func Operand(v float64) Token {
	return Token{operand: v, isOperand: true}
}

// Symbol creates a symbol token.
func Symbol(s string) Token {
	return Token{symbol: s}
}

// Operand returns the value of an operand token.
func (t Token) Operand() (float64, bool) {
	return t.operand, t.isOperand
}

// Symbol returns the symbol of a symbol token.
func (t Token) Symbol() (string, bool) {
	return t.symbol, !t.isOperand
}

func (t Token) String() string {
	if t.isOperand {
		return formatOperand(t.operand)
	}
	return t.symbol
}

// Program is the ordered record of tokens applied since the last clear.
type Program []Token

// ProgramOf converts a loosely typed list into a Program. Entries must be
// numbers or strings.
func ProgramOf(list []any) (Program, error) {
	p := make(Program, 0, len(list))
	for i, v := range list {
		switch v := v.(type) {
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidToken)
			}
			p = append(p, Operand(f))
		case string:
			p = append(p, Symbol(v))
		default:
			rv := reflect.ValueOf(v)
			switch {
			case rv.CanFloat():
				p = append(p, Operand(rv.Float()))
			case rv.CanInt():
				p = append(p, Operand(float64(rv.Int())))
			case rv.CanUint():
				p = append(p, Operand(float64(rv.Uint())))
			default:
				return nil, fmt.Errorf("entry %d (%T): %w", i, v, ErrInvalidToken)
			}
		}
	}
	return p, nil
}

// ParseOperand parses a finite decimal operand. Spellings of infinity and
// NaN are not operands.
func ParseOperand(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// MarshalJSON encodes the program as an array of numbers and strings.
// Non-finite operands have no JSON form.
func (p Program) MarshalJSON() ([]byte, error) {
	list := make([]any, len(p))
	for i, t := range p {
		if t.isOperand {
			if math.IsInf(t.operand, 0) || math.IsNaN(t.operand) {
				return nil, fmt.Errorf("entry %d (%v): %w", i, t.operand, ErrInvalidToken)
			}
			list[i] = t.operand
		} else {
			list[i] = t.symbol
		}
	}
	return json.Marshal(list)
}

// UnmarshalJSON decodes an array of numbers and strings.
func (p *Program) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('[') {
		return fmt.Errorf("unexpected JSON token %v, expected '['", tok)
	}
	var prog Program
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case json.Number:
			v, err := strconv.ParseFloat(tok.String(), 64)
			if err != nil {
				return fmt.Errorf("entry %d: %w", len(prog), ErrInvalidToken)
			}
			prog = append(prog, Operand(v))
		case string:
			prog = append(prog, Symbol(tok))
		default:
			return fmt.Errorf("entry %d (%v): %w", len(prog), tok, ErrInvalidToken)
		}
	}

	// read ']'
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = prog
	return nil
}

func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
