package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTableBasics(t *testing.T) {
	tab := New([]string{"exam", "organ"})
	tab.Append([]string{"CT scan", "head"})
	tab.Append([]string{"MRI"}) // short row gets padded

	if tab.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tab.Len())
	}
	if !tab.HasColumn("organ") || tab.HasColumn("contrast") {
		t.Error("HasColumn misreported schema")
	}

	got, err := tab.Cell(0, "exam")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if got != "CT scan" {
		t.Errorf("Cell(0, exam) = %q", got)
	}

	padded, err := tab.Cell(1, "organ")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if padded != "" {
		t.Errorf("padded cell = %q, want empty", padded)
	}

	if _, err := tab.Cell(0, "contrast"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestAddColumn(t *testing.T) {
	tab := New([]string{"exam"})
	tab.Append([]string{"ct"})
	tab.Append([]string{"mri"})

	if err := tab.AddColumn("exam_flags", []string{"1", "2"}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	got, err := tab.Cell(1, "exam_flags")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if got != "2" {
		t.Errorf("Cell(1, exam_flags) = %q, want 2", got)
	}

	if err := tab.AddColumn("exam_flags", []string{"0", "0"}); err == nil {
		t.Error("expected error for duplicate column")
	}
	if err := tab.AddColumn("short", []string{"1"}); err == nil {
		t.Error("expected error for value count mismatch")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := "exam,organ,contrast\nCT scan,head,with iv contrast\n\"CT, xray\",thorax,\n"

	tab, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tab.Len())
	}
	cell, err := tab.Cell(1, "exam")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if cell != "CT, xray" {
		t.Errorf("quoted cell = %q", cell)
	}

	var buf bytes.Buffer
	if err := tab.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	again, err := Read(&buf)
	if err != nil {
		t.Fatalf("re-Read failed: %v", err)
	}
	if again.Len() != tab.Len() || len(again.Columns()) != len(tab.Columns()) {
		t.Error("round trip changed table shape")
	}
}

func TestReadEmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}
