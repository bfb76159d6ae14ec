package dis

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/codom/asm"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

const guarded = `
.method static int32 Demo.Program::Get(int32 x)
{
    .locals (int32 r)
    .try T to H catch System.Exception handler H to D
T:  ldarg.0
    stloc.0
    leave.s D
H:  pop
    leave.s D
D:  ldloc.0
    ret
}`

func names(instructions []Instruction) []string {
	var out []string
	for _, instr := range instructions {
		out = append(out, instr.Name)
	}
	return out
}

func TestDisassemble(t *testing.T) {
	body, err := asm.Parse(context.Background(), guarded)
	require.NoError(t, err)

	instructions, err := Disassemble(body)
	require.NoError(t, err)
	require.Equal(t, []string{
		"try-start", "ldarg.0", "stloc.0", "leave.s", "try-end",
		"handler-start", "pop", "leave.s", "catch-end", "ldloc.0", "ret",
	}, names(instructions))

	require.True(t, instructions[0].Marker)
	require.Equal(t, "IL_0000", instructions[0].Label)
	require.Equal(t, op.Ldarg0, instructions[1].Opcode)
	require.Equal(t, "x: int32", instructions[1].Annotation)
	require.Equal(t, "r: int32", instructions[2].Annotation)
	require.Equal(t, "IL_0007", instructions[3].Operand.Target())
	require.Equal(t, "catch System.Exception", instructions[5].Annotation)
	require.Equal(t, "IL_0007", instructions[8].Label)
}

func TestDisassembleInstanceArgs(t *testing.T) {
	body, err := asm.Parse(context.Background(), `
.method instance void Demo.Point::Move(int32 dx)
{
    ldarg.0
    ldarg.s dx
    starg.s 1
    ret
}`)
	require.NoError(t, err)

	instructions, err := Disassemble(body)
	require.NoError(t, err)
	require.Equal(t, "this", instructions[0].Annotation)
	require.Equal(t, "dx: int32", instructions[1].Annotation)
	require.Equal(t, "dx: int32", instructions[2].Annotation)
	require.Equal(t, "", instructions[3].Annotation)
}

func TestDisassembleMalformedRegion(t *testing.T) {
	body, err := asm.Parse(context.Background(), `
.method static void Demo.Program::Run()
{
    .try A to NOWHERE finally handler B to C
A:  leave.s C
B:  endfinally
C:  ret
}`)
	require.NoError(t, err)

	instructions, err := Disassemble(body)
	require.Error(t, err)
	require.True(t, errz.Is(err, errz.ErrMalformedRegion))
	require.NotEmpty(t, instructions)
	require.Contains(t, names(instructions), "ret")
}

func TestPrint(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	body, err := asm.Parse(context.Background(), guarded)
	require.NoError(t, err)
	instructions, err := Disassemble(body)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Print(instructions, &buf))
	out := buf.String()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, len(instructions)+4)
	require.Equal(t, "|  LABEL  |     OPCODE      | OPERAND |          INFO          |", lines[1])
	require.Contains(t, out, "| IL_0004 | <handler-start> |         | catch System.Exception |\n")
	require.Contains(t, out, "| IL_0002 | leave.s         | IL_0007 |                        |\n")
}
