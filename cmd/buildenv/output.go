package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/buildenv/internal/buildenv"
)

func isOutputFormat(format string) bool {
	switch format {
	case "text", "yaml", "json":
		return true
	}
	return false
}

// printStatus prints a status line with a colored symbol.
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}

// writeReport prints env in the requested format.
func writeReport(w io.Writer, format string, env *buildenv.BuildEnvironment) error {
	report := env.Report()

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	}

	printStatus(w, "✓", fmt.Sprintf("Manifest %s (app %s)", buildenv.ManifestPath(report.BasePath), report.AppVersion), color.FgGreen)
	printToolStatus(w, "bazel", report.Bazel, report.BazelPath)
	printToolStatus(w, "Xcode", report.Xcode, "xcode-select -p")
	if report.BazelX86_64Path != "" {
		printStatus(w, "✓", fmt.Sprintf("x86_64 bazel at %s", report.BazelX86_64Path), color.FgGreen)
	}
	fmt.Fprintln(w, "Build environment ready.")
	return nil
}

func printToolStatus(w io.Writer, tool string, v buildenv.VersionReport, source string) {
	if v.Overridden {
		printStatus(w, "⚠", fmt.Sprintf("%s %s (required %s, overridden; %s)", tool, v.Effective, v.Required, source), color.FgYellow)
		return
	}
	printStatus(w, "✓", fmt.Sprintf("%s %s (%s)", tool, v.Effective, source), color.FgGreen)
}
