package parser

import (
	"reflect"
	"testing"

	"github.com/guimove/ocpfleet/internal/model"
)

const sampleReport = `Cluster ID: 1a2b3c
Cluster Version: 4.14.3
Provider: aws

ALERT NAME                          SEVERITY
  KubePodCrashLooping               warning
  KubePodCrashLooping               warning
  etcdMembersDown                   critical

Trailing text
DISPLAY NAME                  VERSION    CHANNEL
Cluster Logging               5.8.1      stable
Red Hat OpenShift GitOps      1.10.2     latest
Red Hat OpenShift GitOps      1.11.0     latest
Red Hat OpenShift GitOps      1.10.2     gitops-1.10
broken

ALERT NAME
SecondSectionIgnored
`

func TestExtractSection(t *testing.T) {
	got := ExtractSection(sampleReport, AlertsHeader)
	want := []string{
		"  KubePodCrashLooping               warning",
		"  KubePodCrashLooping               warning",
		"  etcdMembersDown                   critical",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSection() = %q, want %q", got, want)
	}
}

func TestExtractSection_MissingHeader(t *testing.T) {
	if got := ExtractSection("nothing to see\nhere\n", AlertsHeader); len(got) != 0 {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestExtractSection_HeaderThenBlank(t *testing.T) {
	header, lines, found := extractSection("ALERT NAME  SEVERITY\n\nNotAnAlert\n", AlertsHeader)
	if !found {
		t.Fatal("expected header to be found")
	}
	if header != "ALERT NAME  SEVERITY" {
		t.Errorf("unexpected header line %q", header)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty section, got %q", lines)
	}
}

func TestExtractSection_WhitespaceLineEndsSection(t *testing.T) {
	got := ExtractSection("ALERT NAME\nA\n   \t\nB\n", AlertsHeader)
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("got %q, want [A]", got)
	}
}

func TestExtractSection_EndOfInput(t *testing.T) {
	got := ExtractSection("ALERT NAME\r\nA\r\nB", AlertsHeader)
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("got %q, want [A B]", got)
	}
}

func TestExtractSection_HeaderMustBePrefix(t *testing.T) {
	got := ExtractSection("  ALERT NAME\nA\n", AlertsHeader)
	if len(got) != 0 {
		t.Errorf("indented header should not match, got %q", got)
	}
}

func TestParseAlerts_KeepsOrderAndDuplicates(t *testing.T) {
	got := ParseAlerts(sampleReport)
	want := []string{
		"KubePodCrashLooping               warning",
		"KubePodCrashLooping               warning",
		"etcdMembersDown                   critical",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAlerts() = %q, want %q", got, want)
	}
}

func TestParseOperators_ChannelVersionHeader(t *testing.T) {
	text := "DISPLAY NAME               CHANNEL   VERSION\n" +
		"Cluster Network Operator   stable    4.14.3\n" +
		"Cluster Network Operator   stable    4.14.2\n" +
		"\n"

	got := ParseOperators(text)
	want := model.OperatorSet{
		"Cluster Network Operator": {"4.14.3": {}, "4.14.2": {}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseOperators() = %v, want %v", got, want)
	}
}

func TestParseOperators_VersionChannelHeader(t *testing.T) {
	got := ParseOperators(sampleReport)

	if len(got) != 2 {
		t.Fatalf("expected 2 operators, got %d: %v", len(got), got)
	}
	if cell := got.Cell("Cluster Logging"); cell != "5.8.1" {
		t.Errorf("Cluster Logging = %q, want 5.8.1", cell)
	}
	if cell := got.Cell("Red Hat OpenShift GitOps"); cell != "1.10.2, 1.11.0" {
		t.Errorf("GitOps = %q, want %q", cell, "1.10.2, 1.11.0")
	}
}

func TestParseOperators_SkipsShortLines(t *testing.T) {
	got := ParseOperators("DISPLAY NAME\nlonely\n\n")
	if len(got) != 0 {
		t.Errorf("expected no operators, got %v", got)
	}
}

func TestParseOperators_TwoFieldsGiveEmptyName(t *testing.T) {
	got := ParseOperators("DISPLAY NAME\n1.0.0 stable\n")
	if cell := got.Cell(""); cell != "1.0.0" {
		t.Errorf("expected empty-named operator with version 1.0.0, got %v", got)
	}
}

func TestParseOperators_NormalizesWhitespace(t *testing.T) {
	got := ParseOperators("DISPLAY NAME\nCluster    Logging\t5.8.1 stable\nCluster Logging 5.8.2 stable\n")
	if cell := got.Cell("Cluster Logging"); cell != "5.8.1, 5.8.2" {
		t.Errorf("got %v", got)
	}
}

func TestExtractPlatformVersion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"present", sampleReport, "4.14.3"},
		{"missing", "DISPLAY NAME\n", model.UnknownVersion},
		{"empty", "", model.UnknownVersion},
		{"first wins", "Cluster Version: 4.12.1\nCluster Version: 4.13.0\n", "4.12.1"},
		{"keeps later colons", "Cluster Version: 4.14.3 (channel: stable-4.14)", "4.14.3 (channel: stable-4.14)"},
		{"not a prefix", "Old Cluster Version: 4.10", model.UnknownVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlatformVersion(tt.text); got != tt.want {
				t.Errorf("ExtractPlatformVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextParser_Parse(t *testing.T) {
	var p ReportParser = NewTextParser()
	if p.Grammar() != GrammarV1 {
		t.Errorf("Grammar() = %q", p.Grammar())
	}

	facts := p.Parse(sampleReport)
	if facts.PlatformVersion != "4.14.3" {
		t.Errorf("PlatformVersion = %q", facts.PlatformVersion)
	}
	if len(facts.Alerts) != 3 {
		t.Errorf("expected 3 alerts, got %d", len(facts.Alerts))
	}
	if len(facts.Operators) != 2 {
		t.Errorf("expected 2 operators, got %d", len(facts.Operators))
	}
}
