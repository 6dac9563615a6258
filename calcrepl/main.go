// Calcrepl drives the calculator evaluator from text.
//
// Each input line holds whitespace-separated tokens: numbers are entered as
// operands, anything else is applied as an operation symbol. After each line
// the current expression and result are printed. Lines starting with ':' are
// commands:
//
//	:clear         reset the evaluator and its variables
//	:undo          drop the last token
//	:store NAME    assign the current result to NAME and recompute
//	:vars          list variables
//	:program       print the recorded program as JSON
//	:load FILE     replace the program with the JSON program in FILE
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fjl/gio-calc/internal/brain"
)

var verbose = flag.Bool("v", false, "log evaluator debug output")

// aliases maps ASCII spellings to table symbols.
var aliases = map[string]string{
	"-":    brain.SymSubtract,
	"*":    brain.SymMultiply,
	"x":    brain.SymMultiply,
	"/":    brain.SymDivide,
	"pi":   brain.SymPi,
	"sqrt": brain.SymSqrt,
	"cbrt": brain.SymCbrt,
	"exp":  brain.SymExp,
	"log":  brain.SymLog10,
	"neg":  brain.SymNegate,
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("calcrepl: ")

	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	fd := os.Stdin
	switch flag.NArg() {
	case 0:
	case 1:
		var err error
		fd, err = os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer fd.Close()
	default:
		flag.Usage()
	}

	b, err := brain.New(brain.WithLogger(handler))
	if err != nil {
		log.Fatal(err)
	}
	if err := run(b, fd, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run feeds every line of r to the evaluator and reports to w. Bad lines are
// reported and skipped.
func run(b *brain.Evaluator, r io.Reader, w io.Writer) error {
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var err error
		if strings.HasPrefix(line, ":") {
			err = command(b, line[1:], w)
		} else {
			tokens(b, line)
			show(b, w)
		}
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	return scan.Err()
}

func tokens(b *brain.Evaluator, line string) {
	for _, f := range strings.Fields(line) {
		if v, ok := brain.ParseOperand(f); ok {
			b.SetAccumulator(v)
			continue
		}
		if sym, ok := aliases[f]; ok {
			f = sym
		}
		b.PerformOperation(f)
	}
}

func command(b *brain.Evaluator, line string, w io.Writer) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return errors.New("missing command")
	}
	switch args[0] {
	case "clear":
		b.Clear()
		clear(b.Variables())
	case "undo":
		b.Undo()
	case "store":
		if len(args) != 2 {
			return errors.New("usage: :store NAME")
		}
		b.AssignVariable(args[1], b.Result())
	case "vars":
		vars := b.Variables()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s = %s\n", name, format(vars[name]))
		}
		return nil
	case "program":
		data, err := json.Marshal(b.Program())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "load":
		if len(args) != 2 {
			return errors.New("usage: :load FILE")
		}
		p, err := loadProgram(args[1])
		if err != nil {
			return err
		}
		b.SetProgram(p)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	show(b, w)
	return nil
}

func loadProgram(file string) (brain.Program, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var p brain.Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return p, nil
}

func show(b *brain.Evaluator, w io.Writer) {
	if b.IsPartialResult() {
		fmt.Fprintf(w, "%s ...\n", b.Description())
	} else {
		fmt.Fprintf(w, "%s = %s\n", b.Description(), format(b.Result()))
	}
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: calcrepl [options] [file]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
