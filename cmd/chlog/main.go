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

// Command chlog parses and inspects Debian-style package changelogs.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes: 0 clean parse, 1 parse produced error diagnostics, 2
// usage/I-O error.
const (
	exitOK = iota
	exitParseError
	exitUsageError
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	rootCmd := &cobra.Command{
		Use:   "chlog",
		Short: "Parse and inspect Debian-style package changelogs",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newAuthorsCmd())
	rootCmd.AddCommand(newNormalizeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsageError)
	}
}
