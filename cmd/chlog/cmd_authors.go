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
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/chlog/chlog"
	"dirpx.dev/chlog/section"
)

func newAuthorsCmd() *cobra.Command {
	var entryIndex int

	cmd := &cobra.Command{
		Use:   "authors <file>",
		Short: "Split a changelog entry's body into sections by author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cl, _, err := chlog.ReadPath(path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			entries := cl.Entries()
			if entryIndex < 0 || entryIndex >= len(entries) {
				return fmt.Errorf("entry index %d out of range (changelog has %d entries)", entryIndex, len(entries))
			}

			body := entries[entryIndex].ChangeLines()
			lines := make([]section.ChangeLine, len(body))
			for i, text := range body {
				lines[i] = section.ChangeLine{LineNumber: i, Text: text}
			}

			logger.Info("split changelog sections", "file", path, "entry", entryIndex, "lines", len(lines))

			printSections(cmd, section.Sections(lines))
			return nil
		},
	}
	cmd.Flags().IntVarP(&entryIndex, "entry", "e", 0, "index of the entry to split (0 = most recent)")
	return cmd
}

func printSections(cmd *cobra.Command, sections []section.Section) {
	out := cmd.OutOrStdout()
	for _, s := range sections {
		if s.Title != nil {
			fmt.Fprintf(out, "[ %s ]\n", *s.Title)
		}
		for _, group := range s.Groups {
			for _, line := range group {
				fmt.Fprintf(out, "  %s\n", line.Text)
			}
		}
	}
}
