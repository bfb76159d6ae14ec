// Package dis lists a method body as the element stream the decompiler
// consumes: its instructions interleaved with the exception-handling markers
// derived from its regions.
package dis

import (
	"fmt"
	"io"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/decompiler"
	"github.com/deepnoodle-ai/codom/internal/table"
	"github.com/deepnoodle-ai/codom/op"
	"github.com/fatih/color"
)

// Instruction represents a single element of the stream.
type Instruction struct {
	Label      string
	Name       string
	Opcode     op.Code
	Operand    bytecode.Operand
	Marker     bool
	Annotation string
}

// Disassemble returns the element stream of body. Malformed regions are
// reported in the error alongside the elements that could still be placed.
func Disassemble(body *bytecode.MethodBody) ([]Instruction, error) {
	elements, err := decompiler.Preprocess(body)
	instructions := make([]Instruction, 0, len(elements))
	for _, e := range elements {
		if e.IsMarker() {
			var annotation string
			if e.Kind == decompiler.ElemHandlerStart && e.Region != nil {
				annotation = handlerDescription(*e.Region)
			}
			instructions = append(instructions, Instruction{
				Label:      e.Label,
				Name:       e.Kind.String(),
				Marker:     true,
				Annotation: annotation,
			})
			continue
		}
		in := e.Instruction
		info := in.Info()
		instructions = append(instructions, Instruction{
			Label:      in.Label,
			Name:       info.Name,
			Opcode:     in.Code,
			Operand:    in.Operand,
			Annotation: variableName(body, in),
		})
	}
	return instructions, err
}

func handlerDescription(r bytecode.ExceptionRegion) string {
	switch r.Kind {
	case bytecode.HandlerCatch:
		return "catch " + r.CatchType.String()
	case bytecode.HandlerFilter:
		return "filter " + r.FilterStart
	}
	return r.Kind.String()
}

// variableName names the argument or local an instruction addresses.
func variableName(body *bytecode.MethodBody, in bytecode.Instruction) string {
	info := in.Info()
	index := info.Index
	if !info.Implicit {
		if in.Operand.Kind() != bytecode.OperandIndex {
			return ""
		}
		index = in.Operand.Index()
	}
	switch info.Category {
	case op.CatLoadArg, op.CatLoadArgAddr, op.CatStoreArg:
		m := body.Method()
		if !m.IsStatic {
			if index == 0 {
				return "this"
			}
			index--
		}
		if index < 0 || index >= len(m.Parameters) {
			return ""
		}
		p := m.Parameters[index]
		if p.Name == "" {
			return p.Type.String()
		}
		return fmt.Sprintf("%s: %s", p.Name, p.Type)
	case op.CatLoadLocal, op.CatLoadLocalAddr, op.CatStoreLocal:
		if index < 0 || index >= body.LocalCount() {
			return ""
		}
		l := body.LocalAt(index)
		if l.Name == "" {
			return l.Type.String()
		}
		return fmt.Sprintf("%s: %s", l.Name, l.Type)
	}
	return ""
}

var (
	bold    = color.New(color.Bold).SprintFunc()
	italic  = color.New(color.Italic).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
	blue    = color.New(color.FgBlue).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
)

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	var lines [][]string
	for _, instr := range instructions {
		if instr.Marker {
			lines = append(lines, []string{
				instr.Label,
				italic("<" + instr.Name + ">"),
				"",
				cyan(instr.Annotation),
			})
			continue
		}
		lines = append(lines, []string{
			instr.Label,
			bold(instr.Name),
			formatOperand(instr.Operand),
			cyan(instr.Annotation),
		})
	}

	return table.NewTable(writer).
		WithHeader([]string{"LABEL", "OPCODE", "OPERAND", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignLeft,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatOperand(o bytecode.Operand) string {
	s := o.String()
	switch o.Kind() {
	case bytecode.OperandInt, bytecode.OperandFloat:
		return yellow(s)
	case bytecode.OperandString:
		if len(s) > 80 {
			s = s[:77] + "..."
		}
		return green(s)
	case bytecode.OperandMethod, bytecode.OperandField:
		return magenta(s)
	case bytecode.OperandType:
		return blue(s)
	}
	return s
}
