package journey

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDescribeFieldsFlattensStruct(t *testing.T) {
	type inner struct {
		Count int `json:"count"`
	}
	type record struct {
		Title    string   `json:"title"`
		IsLocked bool     `json:"isLocked"`
		Stats    inner    `json:"stats"`
		Tags     []string `json:"tags"`
	}

	got := DescribeFields(record{Tags: []string{"a"}})
	want := []FieldDescriptor{
		{Path: "isLocked", Type: "bool"},
		{Path: "stats.count", Type: "float64"},
		{Path: "tags", Type: "[]string"},
		{Path: "title", Type: "string"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected descriptors (-want +got):\n%s", diff)
	}
}

func TestDescribeFieldsNilValue(t *testing.T) {
	got := DescribeFields(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestDescribeFieldsTimeFieldsAreStrings(t *testing.T) {
	type record struct {
		LockedAt time.Time `json:"lockedAt"`
	}
	got := DescribeFields(record{LockedAt: time.Now()})
	if len(got) != 1 || got[0].Path != "lockedAt" || got[0].Type != "string" {
		t.Fatalf("expected lockedAt described as its wire type, got %v", got)
	}
}
