package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestVersionSet_JoinSortsAndDedups(t *testing.T) {
	vs := VersionSet{}
	vs.Add("4.14.3")
	vs.Add("4.14.2")
	vs.Add("4.14.3")

	if got := vs.Join(); got != "4.14.2, 4.14.3" {
		t.Errorf("Join() = %q, want %q", got, "4.14.2, 4.14.3")
	}
}

func TestOperatorSet_AddAndCell(t *testing.T) {
	s := OperatorSet{}
	s.Add("Cluster Logging", "5.8.1")
	s.Add("Cluster Logging", "5.8.1")
	s.Add("OpenShift GitOps", "1.11.0")

	if got := s.Cell("Cluster Logging"); got != "5.8.1" {
		t.Errorf("Cell(Cluster Logging) = %q", got)
	}
	if got := s.Cell("Service Mesh"); got != "" {
		t.Errorf("absent operator should give an empty cell, got %q", got)
	}
}

func TestOperatorSet_NamesSorted(t *testing.T) {
	s := OperatorSet{}
	for _, name := range []string{"b", "A", "a", "B"} {
		s.Add(name, "1")
	}

	want := []string{"A", "B", "a", "b"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %q, want %q", got, want)
	}
}

func TestOperatorSet_Merge(t *testing.T) {
	a := OperatorSet{}
	a.Add("x", "1")
	b := OperatorSet{}
	b.Add("x", "2")
	b.Add("y", "1")

	a.Merge(b)

	if a.Cell("x") != "1, 2" || a.Cell("y") != "1" {
		t.Errorf("merged set = %v", a)
	}
	if b.Cell("x") != "2" {
		t.Errorf("Merge must not modify its argument, got %v", b)
	}
}

func TestFailedFacts(t *testing.T) {
	ref := ClusterRef{ID: "id-1", Name: "prod"}
	f := FailedFacts(ref, errors.New("boom"))

	if !f.Failed() {
		t.Error("expected Failed() to be true")
	}
	if f.PlatformVersion != UnknownVersion {
		t.Errorf("PlatformVersion = %q", f.PlatformVersion)
	}
	if f.Operators == nil || len(f.Operators) != 0 {
		t.Errorf("expected empty operator set, got %v", f.Operators)
	}
	if (ClusterFacts{}).Failed() {
		t.Error("zero facts should not be failed")
	}
}

func TestFleetReport_HeaderAndRecords(t *testing.T) {
	fr := FleetReport{
		Schema: Schema{Columns: []string{"Logging", "Mesh"}},
		Rows: []AggregatedRow{
			{Name: "prod", ID: "id-1", PlatformVersion: "4.14.3", Cells: map[string]string{"Logging": "5.8.1", "Mesh": ""}},
			{Name: "dev", ID: "id-2", PlatformVersion: UnknownVersion, Cells: map[string]string{}},
		},
		IncludeVersion: true,
	}

	wantHeader := []string{ColumnClusterName, ColumnClusterID, ColumnPlatformVersion, "Logging", "Mesh"}
	if got := fr.Header(); !reflect.DeepEqual(got, wantHeader) {
		t.Errorf("Header() = %q, want %q", got, wantHeader)
	}

	wantRecords := [][]string{
		{"prod", "id-1", "4.14.3", "5.8.1", ""},
		{"dev", "id-2", UnknownVersion, "", ""},
	}
	if got := fr.Records(); !reflect.DeepEqual(got, wantRecords) {
		t.Errorf("Records() = %q, want %q", got, wantRecords)
	}

	fr.IncludeVersion = false
	if got := fr.Header(); len(got) != 4 || got[2] != "Logging" {
		t.Errorf("Header() without version = %q", got)
	}
	for _, rec := range fr.Records() {
		if len(rec) != 4 {
			t.Errorf("record %q should have 4 values", rec)
		}
	}
}
