package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/digipres-tools/droidsig/core/errors"
)

func TestListReportsSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"fmt3.xml", "fmt1.xml", "fmt2.xml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<FileFormat/>"), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "fmt4.xml"), []byte("<FileFormat/>"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	reports, err := ListReports(dir)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("expected 4 reports, got %d: %v", len(reports), reports)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i-1] >= reports[i] {
			t.Errorf("reports not sorted: %v", reports)
		}
	}
}

func TestListReportsMissingDir(t *testing.T) {
	_, err := ListReports(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var ioErr *errors.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected *IOError, got %T", err)
	}
}

func TestReadReportPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmt1.xml")
	if err := os.WriteFile(path, []byte("<FileFormat/>"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	data, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if string(data) != "<FileFormat/>" {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestReadReportXZ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmt1.xml.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write([]byte("<FileFormat><FormatID>1</FormatID></FileFormat>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close xz: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	data, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if !strings.Contains(string(data), "<FormatID>1</FormatID>") {
		t.Errorf("unexpected decompressed content: %s", data)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")
	if err := WriteFileAtomic(path, []byte("first"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestBlake3Hex(t *testing.T) {
	a := Blake3Hex([]byte("signature file"))
	b := Blake3Hex([]byte("signature file"))
	if a != b {
		t.Error("digest must be stable")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
	if a == Blake3Hex([]byte("different")) {
		t.Error("different input must produce a different digest")
	}
}
