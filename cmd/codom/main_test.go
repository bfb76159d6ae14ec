package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const identity = `
.method static int32 Demo.Program::Id(int32 x)
{
    ldarg.0
    ret
}
.method static void Demo.Program::Underflow()
{
    pop
    ret
}`

const single = `
.method static int32 Demo.Program::Id(int32 x)
{
    ldarg.0
    ret
}`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDecompileText(t *testing.T) {
	out, _, err := execute(t, "", "decompile", "--code", single)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "// Demo.Program::Id\n"), out)
	require.Contains(t, out, "return x;")
}

func TestDecompileStrictFailure(t *testing.T) {
	_, _, err := execute(t, "", "decompile", "--code", identity)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Demo.Program::Underflow: stack underflow")
}

func TestDecompileLenientJSON(t *testing.T) {
	out, _, err := execute(t, "", "decompile", "--lenient", "-o", "json", "--code", identity)
	require.NoError(t, err)

	var reports []report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	require.Equal(t, "Demo.Program::Id", reports[0].Method)
	require.Equal(t, "lenient", reports[0].Mode)
	require.Contains(t, reports[0].Source, "return x;")
	require.Empty(t, reports[0].Error)
	require.NotEmpty(t, reports[0].ID)

	require.Equal(t, "Demo.Program::Underflow", reports[1].Method)
	require.Equal(t, "IL_0000", reports[1].Failed)
	require.Contains(t, reports[1].Error, "stack underflow")
	require.NotEqual(t, reports[0].ID, reports[1].ID)
}

func TestDecompileYAMLFromStdin(t *testing.T) {
	out, _, err := execute(t, single, "decompile", "--stdin", "--format", "yaml")
	require.NoError(t, err)

	var reports []report
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	require.Equal(t, "strict", reports[0].Mode)
	require.NotEmpty(t, reports[0].Trace)
}

func TestDecompileMethodFilter(t *testing.T) {
	out, _, err := execute(t, "", "decompile", "--lenient", "-m", "Underflow", "--code", identity)
	require.NoError(t, err)
	require.NotContains(t, out, "Demo.Program::Id")
	require.Contains(t, out, "// error: ")

	_, _, err = execute(t, "", "decompile", "-m", "Missing", "--code", identity)
	require.EqualError(t, err, `method "Missing" not found`)
}

func TestDecompileTrace(t *testing.T) {
	out, _, err := execute(t, "", "decompile", "--trace", "--code", single)
	require.NoError(t, err)
	require.Contains(t, out, "// [completed] decompiled ")
}

func TestDecompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.il")
	require.NoError(t, os.WriteFile(path, []byte(".method static void A::B()\n{\n    frob\n}\n"), 0o644))

	_, _, err := execute(t, "", "decompile", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path+":3:5: unknown opcode")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nlenient: true\n"), 0o644))

	out, _, err := execute(t, "", "--config", path, "decompile", "--code", identity)
	require.NoError(t, err)
	var reports []report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
}

func TestInputErrors(t *testing.T) {
	_, _, err := execute(t, "", "decompile")
	require.EqualError(t, err, "no input provided")

	_, _, err = execute(t, "", "decompile", "--stdin", "--code", single)
	require.EqualError(t, err, "multiple input sources specified")

	_, _, err = execute(t, "", "decompile", "-o", "xml", "--code", single)
	require.EqualError(t, err, "unknown output format: xml (expected one of text, json, yaml)")

	_, _, err = execute(t, "", "decompile", "--log-level", "loud", "--code", single)
	require.Error(t, err)
}

func TestDis(t *testing.T) {
	out, stderr, err := execute(t, "", "dis", "--code", `
.method static void Demo.Program::Guard()
{
    .try T to H finally handler H to E
T:  leave.s E
H:  endfinally
E:  ret
}`)
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.True(t, strings.HasPrefix(out, "static void Demo.Program::Guard()\n"), out)
	require.Contains(t, out, "<try-start>")
	require.Contains(t, out, "<finally-end>")
	require.Contains(t, out, "| IL_0002 | endfinally      |")
}

func TestDisMalformedRegion(t *testing.T) {
	out, stderr, err := execute(t, "", "dis", "--code", `
.method static void Demo.Program::Guard()
{
    .try T to NOWHERE finally handler H to E
T:  leave.s E
H:  endfinally
E:  ret
}`)
	require.NoError(t, err)
	require.Contains(t, stderr, "malformed region")
	require.Contains(t, out, "endfinally")
}
