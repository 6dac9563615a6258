// Package brain implements the calculator evaluator.
//
// Tokens are applied one at a time, as typed on a keypad. Binary operators
// are chained strictly left to right: each new operator first resolves the
// one still waiting for its right operand, so 2 + 3 × 4 = is 20.
//
// Every token is recorded in the program. Assigning a program clears the
// evaluator and replays it, which is how undo works.
//
// An Evaluator must not be used from more than one goroutine at a time.
package brain

import (
	"fmt"
	"log/slog"
)

// pendingOp is a binary operation waiting for its right operand.
type pendingOp struct {
	left float64
	fn   func(x, y float64) float64
}

// Evaluator is the calculator state machine.
type Evaluator struct {
	logger *slog.Logger

	accumulator float64
	pending     *pendingOp
	accDesc     string
	pendingDesc string
	program     Program
	variables   map[string]float64
}

// New creates an evaluator in the zero state.
func New(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		logger:    slog.New(DefaultHandler().WithGroup("brain")),
		variables: make(map[string]float64),
	}
	e.Clear()
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	return e, nil
}

// Clear resets the accumulator, descriptions, pending operation and program.
// Variables are not touched.
func (e *Evaluator) Clear() {
	e.accumulator = 0
	e.accDesc = formatOperand(0)
	e.pendingDesc = ""
	e.pending = nil
	e.program = nil
}

// SetAccumulator commits a typed operand.
func (e *Evaluator) SetAccumulator(v float64) {
	e.accumulator = v
	e.accDesc = formatOperand(v)
	e.program = append(e.program, Operand(v))
}

// PerformOperation applies the operation bound to symbol. Unknown symbols are
// recorded in the program but otherwise ignored.
func (e *Evaluator) PerformOperation(symbol string) {
	e.program = append(e.program, Symbol(symbol))

	op, ok := symbols[symbol]
	if !ok {
		e.logger.Debug("Ignoring unknown symbol", "symbol", symbol)
		return
	}
	switch op := op.(type) {
	case Constant:
		e.accumulator = op.Value
		e.accDesc = symbol
	case UnaryOp:
		e.accDesc = symbol + "(" + e.accDesc + ")"
		e.accumulator = op.Fn(e.accumulator)
	case BinaryOp:
		e.executePending()
		e.pending = &pendingOp{left: e.accumulator, fn: op.Fn}
		e.pendingDesc = e.accDesc + " " + symbol
	case Equals:
		e.executePending()
	case Variable:
		e.accumulator = e.variables[op.Name]
		e.accDesc = op.Name
	}
}

// executePending applies the pending operation to the accumulator.
func (e *Evaluator) executePending() {
	if e.pending == nil {
		return
	}
	e.accDesc = e.pendingDesc + " " + e.accDesc
	e.pendingDesc = ""
	e.accumulator = e.pending.fn(e.pending.left, e.accumulator)
	e.pending = nil
}

// Result returns the accumulator.
func (e *Evaluator) Result() float64 {
	return e.accumulator
}

// IsPartialResult reports whether a binary operation awaits its right operand.
func (e *Evaluator) IsPartialResult() bool {
	return e.pending != nil
}

// Description returns the text of the expression entered so far.
func (e *Evaluator) Description() string {
	if e.IsPartialResult() {
		return e.pendingDesc
	}
	return e.accDesc
}

// Program returns a copy of the tokens recorded since the last clear.
func (e *Evaluator) Program() Program {
	p := make(Program, len(e.program))
	copy(p, e.program)
	return p
}

// SetProgram clears the evaluator and replays p from the zero state.
func (e *Evaluator) SetProgram(p Program) {
	// p may alias e.program.
	replay := make(Program, len(p))
	copy(replay, p)

	e.Clear()
	for _, t := range replay {
		if v, ok := t.Operand(); ok {
			e.SetAccumulator(v)
		} else {
			e.PerformOperation(t.symbol)
		}
	}
	e.logger.Debug("Replayed program", "tokens", len(replay), "result", e.accumulator)
}

// Undo removes the last recorded token and replays the rest.
func (e *Evaluator) Undo() {
	if len(e.program) == 0 {
		return
	}
	e.SetProgram(e.program[:len(e.program)-1])
}

// Variables returns the variable store. Callers may modify it directly;
// changes apply to subsequent variable tokens.
func (e *Evaluator) Variables() map[string]float64 {
	return e.variables
}

// SetVariable creates the named variable with value 0.
func (e *Evaluator) SetVariable(name string) {
	e.variables[name] = 0
}

// AssignVariable stores v under name and replays the program, so tokens that
// already read the variable see the new value.
func (e *Evaluator) AssignVariable(name string, v float64) {
	e.variables[name] = v
	e.SetProgram(e.program)
}
