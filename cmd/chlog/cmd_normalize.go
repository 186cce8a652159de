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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/chlog/commitmsg"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Reduce a changelog change group to a commit message",
		Long: `Reduce a changelog change group to text suitable for a VCS commit
message: leading/trailing blank lines are trimmed, leading two-space or
tab indentation is stripped from each line, and a single "* ", "+ " or
"- " bullet is dropped when only one line remains.

Reads from the given file, or from stdin if no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			var lines []string
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			result := commitmsg.Normalize(lines)
			logger.Info("normalized commit message", "input_lines", len(lines), "output_lines", len(result))

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(result, "\n"))
			return nil
		},
	}
	return cmd
}
