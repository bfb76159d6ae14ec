package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/codom/decompiler"
	"github.com/deepnoodle-ai/codom/trace"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var outputFormatsCompletion = []string{"text", "json", "yaml"}

type localReport struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Type  string `json:"type" yaml:"type"`
}

// report is the serializable form of one decompilation result.
type report struct {
	ID     string        `json:"id" yaml:"id"`
	Method string        `json:"method" yaml:"method"`
	Mode   string        `json:"mode" yaml:"mode"`
	Source string        `json:"source" yaml:"source"`
	Locals []localReport `json:"locals,omitempty" yaml:"locals,omitempty"`
	Trace  []trace.Entry `json:"trace,omitempty" yaml:"trace,omitempty"`
	Failed string        `json:"failed,omitempty" yaml:"failed,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(d *decompiler.Decompiler, res *decompiler.Result) report {
	r := report{
		ID:     res.ID.String(),
		Method: res.Method.FullName(),
		Mode:   d.Mode().String(),
		Source: res.Render(nil),
		Trace:  res.Trace,
	}
	for _, l := range res.Locals {
		r.Locals = append(r.Locals, localReport{Index: l.Index, Name: l.Name, Type: l.Type.String()})
	}
	if res.Failed != nil {
		r.Failed = res.Failed.Label
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
	}
	return r
}

func getOutput(reports []report, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return getOutputText(reports), nil
	case "json":
		output, err := getOutputJSON(reports)
		if err != nil {
			return "", err
		}
		return string(output) + "\n", nil
	case "yaml":
		output, err := yaml.Marshal(reports)
		if err != nil {
			return "", err
		}
		return string(output), nil
	default:
		return "", fmt.Errorf("unknown output format: %s (expected one of %s)",
			format, strings.Join(outputFormatsCompletion, ", "))
	}
}

func getOutputJSON(reports []report) ([]byte, error) {
	if viper.GetBool("no-color") || color.NoColor {
		return json.MarshalIndent(reports, "", "  ")
	}
	return prettyjson.Marshal(reports)
}

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func getOutputText(reports []report) string {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(faint("// "+r.Method) + "\n")
		sb.WriteString(r.Source + "\n")
		if r.Error != "" {
			sb.WriteString(red("// error: "+r.Error) + "\n")
		}
		if !viper.GetBool("trace") {
			continue
		}
		for _, e := range r.Trace {
			line := "// " + e.String()
			switch e.Severity {
			case trace.Error:
				line = red(line)
			case trace.Warning:
				line = yellow(line)
			default:
				line = faint(line)
			}
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}
