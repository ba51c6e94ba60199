package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReport_Finalize(t *testing.T) {
	reportFile, err := os.CreateTemp(t.TempDir(), "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	// a stored file entry
	srcPath := filepath.Join(t.TempDir(), "input.graphql")
	if err := os.WriteFile(srcPath, []byte("query { a }"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	r.Store("input.graphql", srcPath)

	// an in-memory entry
	r.StoreData("fragments.txt", []byte("Friend\nPet\n"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	arc, err := zip.OpenReader(reportFile.Name())
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer arc.Close()

	want := map[string]bool{"MANIFEST": false, "input.graphql": false, "fragments.txt": false}
	for _, f := range arc.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("report archive is missing %q", name)
		}
	}
}

func TestReport_NilSafe(t *testing.T) {
	var r *Report

	// all operations on a nil report must be no-ops
	r.Store("name", "path")
	r.StoreData("name", []byte("data"))
	if err := r.StoreCopy("name", "path"); err != nil {
		t.Errorf("StoreCopy() on nil report error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q, want empty", r.Name())
	}
}

func TestReport_StoreCopy(t *testing.T) {
	reportFile, err := os.CreateTemp(t.TempDir(), "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	srcPath := filepath.Join(t.TempDir(), "query.graphql")
	if err := os.WriteFile(srcPath, []byte("query { a }"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := r.StoreCopy("query.graphql", srcPath); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}

	// mutate the original - the copy must keep the content from the call time
	if err := os.WriteFile(srcPath, []byte("mutated"), 0644); err != nil {
		t.Fatalf("failed to overwrite test file: %v", err)
	}

	// storing same name again must not panic, name gets versioned
	if err := r.StoreCopy("query.graphql", srcPath); err != nil {
		t.Fatalf("StoreCopy() second call error = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	arc, err := zip.OpenReader(reportFile.Name())
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer arc.Close()

	var found bool
	for _, f := range arc.File {
		if f.Name != "query.graphql" {
			continue
		}
		found = true
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open archive entry: %v", err)
		}
		buf := make([]byte, 32)
		n, _ := rc.Read(buf)
		rc.Close()
		if string(buf[:n]) != "query { a }" {
			t.Errorf("archived copy = %q, want content from StoreCopy() time", buf[:n])
		}
	}
	if !found {
		t.Error("report archive is missing query.graphql")
	}
}
