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

// Package commitmsg reduces a changelog change group to text suitable for
// a VCS commit message, the way debcommit does.
package commitmsg

import "strings"

// Normalize trims leading and trailing blank lines from lines, strips a
// leading run of two-space or tab indentation from each remaining line,
// and — only when exactly one line remains — additionally drops a single
// leading "*", "+" or "-" bullet and the whitespace following it.
func Normalize(lines []string) []string {
	lines = trimBlankEdges(lines)
	if len(lines) == 0 {
		return []string{}
	}

	dedented := make([]string, len(lines))
	for i, line := range lines {
		dedented[i] = dedent(line)
	}

	if len(dedented) != 1 {
		return dedented
	}

	return []string{stripBullet(dedented[0])}
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	return lines[start:end]
}

// dedent repeatedly strips a leading two-space run or a leading tab.
func dedent(line string) string {
	for {
		switch {
		case strings.HasPrefix(line, "  "):
			line = line[2:]
		case strings.HasPrefix(line, "\t"):
			line = line[1:]
		default:
			return line
		}
	}
}

// stripBullet drops a single leading "* ", "+ " or "- " bullet, the way
// debcommit does when collapsing a single change to its own commit
// message.
func stripBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ ") || strings.HasPrefix(trimmed, "- ") {
		return strings.TrimLeft(trimmed[1:], " \t")
	}
	return trimmed
}
