package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fjl/gio-calc/internal/brain"
)

// memory is the variable behind the M key.
const memory = "M"

// calculator tracks keypad input and feeds completed operands and operations
// into the evaluator.
type calculator struct {
	brain  *brain.Evaluator
	input  string
	typing bool
}

func newCalculator(b *brain.Evaluator) *calculator {
	return &calculator{brain: b}
}

// digit processes an input digit.
func (c *calculator) digit(in string) bool {
	if len(in) != 1 {
		return false
	}
	switch {
	case in[0] == '.':
		if c.typing && strings.Contains(c.input, ".") {
			return false
		}
		if !c.typing {
			c.input = "0"
			c.typing = true
		}
		c.input += in
		return true
	case in[0] >= '0' && in[0] <= '9':
		if !c.typing || c.input == "0" {
			c.input = ""
			c.typing = true
		}
		c.input += in
		return true
	default:
		return false
	}
}

// run commits the typed operand, if any, and applies the operation.
func (c *calculator) run(symbol string) {
	c.commit()
	c.brain.PerformOperation(symbol)
}

// commit hands the typed input to the evaluator.
func (c *calculator) commit() {
	if !c.typing {
		return
	}
	c.brain.SetAccumulator(c.value())
	c.typing = false
	c.input = ""
}

// value is the number currently shown.
func (c *calculator) value() float64 {
	if !c.typing {
		return c.brain.Result()
	}
	num, _ := brain.ParseOperand(c.input)
	return num
}

// rubout removes the last typed character, or undoes the last operation
// when nothing is being typed.
func (c *calculator) rubout() {
	if !c.typing {
		c.brain.Undo()
		return
	}
	c.input = c.input[:len(c.input)-1]
	if c.input == "" {
		c.typing = false
	}
}

// store puts the shown value into variable M and recomputes.
func (c *calculator) store() {
	v := c.value()
	c.typing = false
	c.input = ""
	c.brain.AssignVariable(memory, v)
}

// reset clears the calculator and its variables.
func (c *calculator) reset() {
	c.input = ""
	c.typing = false
	c.brain.Clear()
	clear(c.brain.Variables())
}

// paste accepts a plain decimal number, which becomes the typed input, or a
// JSON program, which replaces the current one.
func (c *calculator) paste(text string) bool {
	text = strings.TrimSpace(text)
	if isDecimal(text) {
		c.input = text
		c.typing = true
		return true
	}
	var p brain.Program
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return false
	}
	c.input = ""
	c.typing = false
	c.brain.SetProgram(p)
	return true
}

// isDecimal reports whether s is input the keypad could have produced: digits
// with at most one decimal point, not at the start. Every prefix of such input
// parses as a number.
func isDecimal(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	dot := false
	for i := 1; i < len(s); i++ {
		switch {
		case s[i] == '.' && !dot:
			dot = true
		case s[i] < '0' || s[i] > '9':
			return false
		}
	}
	return true
}

// programJSON returns the evaluator's program in JSON form.
func (c *calculator) programJSON() (string, error) {
	data, err := json.Marshal(c.brain.Program())
	return string(data), err
}

// pendingSymbol returns the binary operator waiting for its right operand.
func (c *calculator) pendingSymbol() string {
	if c.typing || !c.brain.IsPartialResult() {
		return ""
	}
	p := c.brain.Program()
	if len(p) == 0 {
		return ""
	}
	sym, _ := p[len(p)-1].Symbol()
	op, _ := brain.Lookup(sym)
	if _, ok := op.(brain.BinaryOp); !ok {
		return ""
	}
	return sym
}

// text gives the current output of the calculator.
func (c *calculator) text() string {
	if c.typing {
		return c.input
	}
	return strconv.FormatFloat(c.brain.Result(), 'g', 12, 64)
}

// descriptionText gives the expression line shown above the result.
func (c *calculator) descriptionText() string {
	if len(c.brain.Program()) == 0 {
		return " "
	}
	if c.brain.IsPartialResult() {
		return c.brain.Description() + " ..."
	}
	return c.brain.Description() + " ="
}
