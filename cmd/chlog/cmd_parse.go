/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/chlog/chlog"
)

type entryView struct {
	Package       string   `json:"package" yaml:"package"`
	Version       string   `json:"version" yaml:"version"`
	Distributions []string `json:"distributions" yaml:"distributions"`
	Urgency       string   `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	Maintainer    string   `json:"maintainer" yaml:"maintainer"`
	Email         string   `json:"email" yaml:"email"`
	Timestamp     string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Changes       []string `json:"changes" yaml:"changes"`
}

type diagnosticView struct {
	Message  string `json:"message" yaml:"message"`
	Offset   int    `json:"offset" yaml:"offset"`
	Len      int    `json:"len" yaml:"len"`
	Severity string `json:"severity" yaml:"severity"`
}

type parseResultView struct {
	Entries     []entryView      `json:"entries" yaml:"entries"`
	Diagnostics []diagnosticView `json:"diagnostics" yaml:"diagnostics"`
}

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a changelog file and print its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cl, diags, err := chlog.ReadPath(path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			entries := cl.Entries()
			logger.Info("parsed changelog", "file", path, "entries", len(entries), "diagnostics", len(diags))

			view := buildParseResultView(entries, diags)
			if err := printParseResult(cmd, format, view); err != nil {
				return err
			}

			if hasErrorDiagnostic(diags) {
				os.Exit(exitParseError)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return cmd
}

func buildParseResultView(entries []chlog.Entry, diags []chlog.Diagnostic) parseResultView {
	view := parseResultView{
		Entries:     make([]entryView, len(entries)),
		Diagnostics: make([]diagnosticView, len(diags)),
	}
	for i, e := range entries {
		ev := entryView{
			Package:       e.Package(),
			Version:       e.Version().Raw,
			Distributions: e.Distributions(),
			Maintainer:    e.Maintainer(),
			Email:         e.Email(),
			Changes:       e.ChangeLines(),
		}
		if urgency, err := e.Urgency(); err == nil {
			ev.Urgency = urgency.String()
		}
		if ts, err := e.Timestamp(); err == nil {
			ev.Timestamp = ts.Format(timestampDisplayLayout)
		}
		view.Entries[i] = ev
	}
	for i, d := range diags {
		view.Diagnostics[i] = diagnosticView{
			Message:  d.Message,
			Offset:   d.Offset,
			Len:      d.Len,
			Severity: d.Severity.String(),
		}
	}
	return view
}

const timestampDisplayLayout = "2006-01-02T15:04:05Z07:00"

func printParseResult(cmd *cobra.Command, format string, view parseResultView) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "yaml":
		data, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	case "text":
		printParseResultText(cmd, view)
	default:
		return fmt.Errorf("unknown format: %s (expected text, json, or yaml)", format)
	}
	return nil
}

func printParseResultText(cmd *cobra.Command, view parseResultView) {
	out := cmd.OutOrStdout()
	for _, e := range view.Entries {
		fmt.Fprintf(out, "%s (%s) %s\n", e.Package, e.Version, strings.Join(e.Distributions, " "))
		if e.Urgency != "" {
			fmt.Fprintf(out, "  urgency: %s\n", e.Urgency)
		}
		for _, c := range e.Changes {
			fmt.Fprintf(out, "  %s\n", c)
		}
		fmt.Fprintf(out, "  -- %s <%s>", e.Maintainer, e.Email)
		if e.Timestamp != "" {
			fmt.Fprintf(out, "  %s", e.Timestamp)
		}
		fmt.Fprintln(out)
	}
	for _, d := range view.Diagnostics {
		fmt.Fprintf(out, "[%s] offset=%d len=%d: %s\n", d.Severity, d.Offset, d.Len, d.Message)
	}
}

func hasErrorDiagnostic(diags []chlog.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == chlog.SeverityError {
			return true
		}
	}
	return false
}
