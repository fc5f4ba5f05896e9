package parser

import "strings"

// Header lines that open the sections of an inspection report.
const (
	AlertsHeader    = "ALERT NAME"
	OperatorsHeader = "DISPLAY NAME"
)

// VersionLabel prefixes the line carrying the cluster platform version.
const VersionLabel = "Cluster Version:"

// ExtractSection returns the raw lines of the first section whose header line
// starts with header. The header itself is not returned, and the section ends
// at the first blank (or whitespace-only) line or at end of input.
// A missing header yields an empty result.
func ExtractSection(text, header string) []string {
	_, lines, _ := extractSection(text, header)
	return lines
}

// extractSection is ExtractSection that also returns the matched header line
// and whether one was found.
func extractSection(text, header string) (string, []string, bool) {
	var (
		out        []string
		headerLine string
		capturing  bool
	)

	for _, line := range splitLines(text) {
		if !capturing {
			if strings.HasPrefix(line, header) {
				headerLine = line
				capturing = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		out = append(out, line)
	}

	return headerLine, out, capturing
}

// splitLines splits on "\n", dropping a trailing "\r" from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
