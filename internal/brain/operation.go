package brain

import (
	"math"
	"sort"
)

// Operation is one entry of the symbol table. The concrete types are
// Constant, UnaryOp, BinaryOp, Equals and Variable.
type Operation interface {
	operation()
}

// Constant replaces the accumulator with a fixed value.
type Constant struct {
	Value float64
}

// UnaryOp applies Fn to the accumulator.
type UnaryOp struct {
	Fn func(float64) float64
}

// BinaryOp is deferred until its right operand is known.
type BinaryOp struct {
	Fn func(x, y float64) float64
}

// Equals resolves a pending binary operation.
type Equals struct{}

// Variable reads a named value from the variable store.
type Variable struct {
	Name string
}

func (Constant) operation() {}
func (UnaryOp) operation()  {}
func (BinaryOp) operation() {}
func (Equals) operation()   {}
func (Variable) operation() {}

// Operation symbols.
const (
	SymPi       = "π"
	SymE        = "e"
	SymSqrt     = "√"
	SymCbrt     = "∛"
	SymExp      = "eˣ"
	SymPow10    = "10ˣ"
	SymLn       = "ln"
	SymLog10    = "log₁₀"
	SymSin      = "sin"
	SymCos      = "cos"
	SymTan      = "tan"
	SymNegate   = "±"
	SymPercent  = "%"
	SymDivide   = "÷"
	SymMultiply = "×"
	SymAdd      = "+"
	SymSubtract = "−"
	SymEquals   = "="
	SymMemory   = "M"
)

var symbols = map[string]Operation{
	SymPi:       Constant{math.Pi},
	SymE:        Constant{math.E},
	SymSqrt:     UnaryOp{math.Sqrt},
	SymCbrt:     UnaryOp{func(x float64) float64 { return math.Pow(x, 1.0/3.0) }},
	SymExp:      UnaryOp{math.Exp},
	SymPow10:    UnaryOp{func(x float64) float64 { return math.Pow(10, x) }},
	SymLn:       UnaryOp{math.Log},
	SymLog10:    UnaryOp{math.Log10},
	SymSin:      UnaryOp{math.Sin},
	SymCos:      UnaryOp{math.Cos},
	SymTan:      UnaryOp{math.Tan},
	SymNegate:   UnaryOp{func(x float64) float64 { return -x }},
	SymPercent:  UnaryOp{func(x float64) float64 { return x / 100 }},
	SymDivide:   BinaryOp{func(x, y float64) float64 { return x / y }},
	SymMultiply: BinaryOp{func(x, y float64) float64 { return x * y }},
	SymAdd:      BinaryOp{func(x, y float64) float64 { return x + y }},
	SymSubtract: BinaryOp{func(x, y float64) float64 { return x - y }},
	SymEquals:   Equals{},
	SymMemory:   Variable{"M"},
}

// Lookup returns the operation bound to symbol.
func Lookup(symbol string) (Operation, bool) {
	op, ok := symbols[symbol]
	return op, ok
}

// Symbols returns every known symbol in sorted order.
func Symbols() []string {
	list := make([]string, 0, len(symbols))
	for sym := range symbols {
		list = append(list, sym)
	}
	sort.Strings(list)
	return list
}
