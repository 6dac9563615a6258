package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fjl/gio-calc/internal/brain"
)

var (
	digitColor       = color.NRGBA{90, 90, 90, 255}
	specialColor     = color.NRGBA{70, 70, 70, 255}
	funcColor        = color.NRGBA{60, 75, 90, 255}
	opColor          = color.NRGBA{122, 90, 90, 255}
	activeOpColor    = color.NRGBA{160, 90, 90, 255}
	backgroundColor  = color.NRGBA{50, 50, 50, 255}
	resultColor      = color.NRGBA{255, 255, 255, 255}
	descriptionColor = color.NRGBA{170, 170, 170, 255}
	resultBackground = color.NRGBA{35, 35, 35, 255}

	designWidth  = unit.Dp(330)
	designHeight = unit.Dp(520)
	controlInset = unit.Dp(6)
	cornerRadius = unit.Dp(3.5)
)

var verbose = flag.Bool("v", false, "log evaluator debug output")

// calcUI is the user interface of the calculator.
type calcUI struct {
	calc    *calculator
	theme   *material.Theme
	buttons [7][5]*button

	cornerRadius int
	gridSpacing  int
}

func newUI(theme *material.Theme, calc *calculator) *calcUI {
	ui := &calcUI{theme: theme, calc: calc}
	ui.buttons = [7][5]*button{
		{ui.fn(brain.SymPi), ui.fn(brain.SymE), ui.fn(brain.SymMemory), ui.special("→M", calc.store), ui.special("⌫", calc.rubout)},
		{ui.fn(brain.SymSqrt), ui.fn(brain.SymCbrt), ui.fn(brain.SymExp), ui.fn(brain.SymPow10), ui.special("AC", calc.reset)},
		{ui.fn(brain.SymLn), ui.fn(brain.SymLog10), ui.fn(brain.SymSin), ui.fn(brain.SymCos), ui.fn(brain.SymTan)},
		{ui.digit("7"), ui.digit("8"), ui.digit("9"), ui.op(brain.SymDivide), ui.fn(brain.SymNegate)},
		{ui.digit("4"), ui.digit("5"), ui.digit("6"), ui.op(brain.SymMultiply), ui.fn(brain.SymPercent)},
		{ui.digit("1"), ui.digit("2"), ui.digit("3"), ui.op(brain.SymSubtract), nil},
		{ui.digit("0"), ui.digit("."), ui.op(brain.SymEquals), ui.op(brain.SymAdd), nil},
	}
	return ui
}

// digit creates a digit button.
func (ui *calcUI) digit(input string) *button {
	b := newButton(input, digitColor)
	b.action = func() { ui.calc.digit(input) }
	return b
}

// op creates a binary operation button.
func (ui *calcUI) op(symbol string) *button {
	b := newButton(symbol, opColor)
	b.action = func() { ui.calc.run(symbol) }
	b.symbol = symbol
	return b
}

// fn creates a button for a constant, function or variable.
func (ui *calcUI) fn(symbol string) *button {
	b := newButton(symbol, funcColor)
	b.action = func() { ui.calc.run(symbol) }
	return b
}

// special creates a special operation button.
func (ui *calcUI) special(name string, fn func()) *button {
	b := newButton(name, specialColor)
	b.action = fn
	return b
}

// Layout draws the UI.
func (ui *calcUI) Layout(gtx layout.Context) layout.Dimensions {
	// Adapt design for screen size.
	scaleFactor := float32(gtx.Constraints.Max.X) / float32(gtx.Dp(designWidth))
	ui.cornerRadius = gtx.Dp(cornerRadius * unit.Dp(scaleFactor))
	ui.gridSpacing = gtx.Dp(controlInset * unit.Dp(scaleFactor))

	// Handle key events.
	ui.layoutInput(gtx)

	inset := layout.UniformInset(controlInset)
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		flex := layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceStart}
		return flex.Layout(gtx,
			layout.Flexed(20, func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, ui.layoutResult)
			}),
			layout.Flexed(80, func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, ui.layoutButtons)
			}),
		)
	})
}

func (ui *calcUI) layoutResult(gtx layout.Context) layout.Dimensions {
	rect := image.Rectangle{Max: gtx.Constraints.Max}
	rr := clip.UniformRRect(rect, ui.cornerRadius)
	paint.FillShape(gtx.Ops, resultBackground, rr.Op(gtx.Ops))

	inset := layout.UniformInset(controlInset)
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		flex := layout.Flex{Axis: layout.Vertical}
		return flex.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return ui.layoutText(gtx, ui.calc.descriptionText(), descriptionColor)
			}),
			layout.Flexed(2, func(gtx layout.Context) layout.Dimensions {
				return ui.layoutText(gtx, ui.calc.text(), resultColor)
			}),
		)
	})
}

// layoutText draws right-aligned text sized to the available height.
func (ui *calcUI) layoutText(gtx layout.Context, txt string, c color.NRGBA) layout.Dimensions {
	fontSizePx := float32(gtx.Constraints.Max.Y) / 1.1
	fontSizeSp := unit.Sp(fontSizePx / gtx.Metric.PxPerSp)

	l := material.Label(ui.theme, fontSizeSp, txt)
	l.Color = c
	l.Alignment = text.End
	l.MaxLines = 1
	return shrinkToFit(gtx, l.Layout)
}

func (ui *calcUI) layoutButtons(gtx layout.Context) layout.Dimensions {
	g := grid{
		rows:    len(ui.buttons),
		cols:    len(ui.buttons[0]),
		spacing: ui.gridSpacing,
	}
	return g.layout(gtx, func(row, col int, gtx layout.Context) layout.Dimensions {
		if b := ui.buttons[row][col]; b != nil {
			return ui.layoutButton(gtx, b)
		}
		return layout.Dimensions{}
	})
}

func (ui *calcUI) layoutButton(gtx layout.Context, b *button) layout.Dimensions {
	if b.clicker.Clicked() && b.action != nil {
		b.action()
	}

	return b.clicker.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		textSizePx := float32(gtx.Constraints.Max.Y) / 2.2
		textSizeSp := unit.Sp(textSizePx / gtx.Metric.PxPerSp)

		style := material.Button(ui.theme, &b.clicker, b.text)
		style.Background = b.color
		style.Inset = layout.Inset{}
		style.TextSize = textSizeSp
		style.CornerRadius = unit.Dp(float32(ui.cornerRadius) / gtx.Metric.PxPerDp)
		if b.symbol != "" && b.symbol == ui.calc.pendingSymbol() {
			style.Background = activeOpColor
		}
		return style.Layout(gtx)
	})
}

// layoutInput registers the global key handler.
func (ui *calcUI) layoutInput(gtx layout.Context) {
	// Register handler for key events.
	input := key.InputOp{
		Tag:  ui,
		Hint: key.HintNumeric,
		Keys: "Short-(Shift)-[C,V]|(Shift)-[0,1,2,3,4,5,6,7,8,9,.,+,*,/,%,=,⌤,⏎,⌫,⌦,⎋]|(Alt)-(Shift)-[-]",
	}
	input.Add(gtx.Ops)

	// Request keyboard focus. This is required to make the Return key work.
	key.FocusOp{Tag: ui}.Add(gtx.Ops)

	for _, ev := range gtx.Queue.Events(ui) {
		switch ev := ev.(type) {
		case key.Event:
			switch {
			case isCopyProgram(ev):
				ui.copyProgram(gtx)
			case isCopy(ev):
				op := clipboard.WriteOp{Text: ui.calc.text()}
				op.Add(gtx.Ops)
			case isPaste(ev):
				op := clipboard.ReadOp{Tag: ui}
				op.Add(gtx.Ops)
			default:
				ui.handleKey(ev)
			}

		case clipboard.Event:
			ui.calc.paste(ev.Text)
		}
	}
}

// copyProgram puts the evaluator's program on the clipboard as JSON.
func (ui *calcUI) copyProgram(gtx layout.Context) {
	prog, err := ui.calc.programJSON()
	if err != nil {
		slog.Warn("Cannot encode program", "err", err)
		return
	}
	op := clipboard.WriteOp{Text: prog}
	op.Add(gtx.Ops)
}

func isCopy(e key.Event) bool {
	return e.Name == "C" && e.Modifiers.Contain(key.ModShortcut)
}

func isCopyProgram(e key.Event) bool {
	return isCopy(e) && e.Modifiers.Contain(key.ModShift)
}

func isPaste(e key.Event) bool {
	return e.Name == "V" && e.Modifiers.Contain(key.ModShortcut)
}

// handleKey handles a key event.
func (ui *calcUI) handleKey(e key.Event) {
	if e.State == key.Release {
		return
	}

	switch e.Name {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		ui.calc.digit(e.Name)
	case "+":
		ui.calc.run(brain.SymAdd)
	case "-":
		if e.Modifiers.Contain(key.ModAlt) {
			ui.calc.run(brain.SymNegate)
		} else {
			ui.calc.run(brain.SymSubtract)
		}
	case "*":
		ui.calc.run(brain.SymMultiply)
	case "/":
		ui.calc.run(brain.SymDivide)
	case "%":
		ui.calc.run(brain.SymPercent)
	case "=", key.NameEnter, key.NameReturn:
		ui.calc.run(brain.SymEquals)
	case key.NameDeleteBackward, key.NameDeleteForward:
		ui.calc.rubout()
	case key.NameEscape:
		ui.calc.reset()
	}
}

// button is a clickable button.
type button struct {
	symbol string // set for binary operators
	text   string
	action func()

	color   color.NRGBA
	clicker widget.Clickable
}

func newButton(text string, color color.NRGBA) *button {
	return &button{text: text, color: color}
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	b, err := brain.New(brain.WithLogger(handler))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		size     = app.Size(designWidth, designHeight)
		statusBg = app.StatusColor(backgroundColor)
		sysBg    = app.NavigationColor(backgroundColor)
		title    = app.Title("GioCalc")
		portrait = app.PortraitOrientation.Option()
	)
	go func() {
		w := app.NewWindow(statusBg, sysBg, size, title, portrait)
		w.Option(app.MinSize(designWidth, designHeight))

		if err := loop(w, newCalculator(b)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loop is the main loop of the app.
func loop(w *app.Window, calc *calculator) error {
	var (
		th  = material.NewTheme(gofont.Collection())
		ui  = newUI(th, calc)
		ops op.Ops
	)

	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			paint.Fill(gtx.Ops, backgroundColor)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
	return nil
}
