// Package parser extracts structured facts from inspection report text.
//
// The report grammar understood here (v1) has three parts:
//
//	ALERT NAME ...             alerts section, one alert per line
//	DISPLAY NAME ...           operators section, "<name...> <version> <channel>"
//	                           (or "<name...> <channel> <version>" when the
//	                           header ends in VERSION)
//	Cluster Version: <value>   platform version line
//
// Sections end at the first blank line.
package parser

import (
	"strings"

	"github.com/guimove/ocpfleet/internal/model"
)

// GrammarV1 identifies the report grammar implemented by TextParser.
const GrammarV1 = "v1"

// Facts are the values a ReportParser extracts from one raw report.
type Facts struct {
	Operators       model.OperatorSet
	Alerts          []string
	PlatformVersion string
}

// ReportParser turns raw inspection output into facts. Aggregation depends on
// this interface only, so a new report format needs a new implementation and
// nothing else.
type ReportParser interface {
	Parse(raw string) Facts
	Grammar() string
}

// TextParser parses the plain-text report grammar v1.
type TextParser struct{}

// NewTextParser returns a parser for grammar v1.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse extracts operators, alerts and platform version from raw.
func (p *TextParser) Parse(raw string) Facts {
	return Facts{
		Operators:       ParseOperators(raw),
		Alerts:          ParseAlerts(raw),
		PlatformVersion: ExtractPlatformVersion(raw),
	}
}

// Grammar returns GrammarV1.
func (p *TextParser) Grammar() string {
	return GrammarV1
}

// ParseAlerts returns the trimmed lines of the alerts section in report order.
// Repeated alerts are kept: each line is a distinct firing instance.
func ParseAlerts(text string) []string {
	lines := ExtractSection(text, AlertsHeader)
	alerts := make([]string, 0, len(lines))
	for _, line := range lines {
		alerts = append(alerts, strings.TrimSpace(line))
	}
	return alerts
}

// ParseOperators returns the operators section as name -> versions.
//
// Each line is split on whitespace. The two trailing fields are the version
// and channel columns, and everything before them, joined by single spaces,
// is the display name. The version is the second-to-last field unless the
// header line names VERSION as its last column, in which case it is the last
// field. Lines with fewer than two fields are ignored.
func ParseOperators(text string) model.OperatorSet {
	ops := model.OperatorSet{}

	headerLine, lines, _ := extractSection(text, OperatorsHeader)
	versionIdx := 2
	if hf := strings.Fields(headerLine); len(hf) > 0 && hf[len(hf)-1] == "VERSION" {
		versionIdx = 1
	}

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.Join(fields[:len(fields)-2], " ")
		version := fields[len(fields)-versionIdx]
		ops.Add(name, version)
	}
	return ops
}

// ExtractPlatformVersion returns the value of the first "Cluster Version:"
// line, or model.UnknownVersion if there is none.
func ExtractPlatformVersion(text string) string {
	for _, line := range splitLines(text) {
		if !strings.HasPrefix(line, VersionLabel) {
			continue
		}
		_, value, _ := strings.Cut(line, ":")
		return strings.TrimSpace(value)
	}
	return model.UnknownVersion
}
