package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFS_WriteReadRoundTrip(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if err := fs.Write(ctx, "series/2024/run.csv", []byte("a,b\n1,2\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := fs.Read(ctx, "series/2024/run.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestLocalFS_RejectsEscapingPaths(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "archive")
	fs, err := NewLocalFS(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for _, path := range []string{
		"../escape.csv",
		"../../escape.csv",
		"series/../../escape.csv",
		"..",
	} {
		if err := fs.Write(ctx, path, []byte("x")); err == nil {
			t.Errorf("Write(%q) should be rejected", path)
		}
		if _, err := fs.Read(ctx, path); err == nil {
			t.Errorf("Read(%q) should be rejected", path)
		}
		if err := fs.Delete(ctx, path); err == nil {
			t.Errorf("Delete(%q) should be rejected", path)
		}
	}

	if _, err := os.Stat(filepath.Join(base, "escape.csv")); !os.IsNotExist(err) {
		t.Error("file written outside archive root")
	}
}

func TestLocalFS_CleanedPathsStayInside(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	// Dot segments that resolve inside the root are fine.
	if err := fs.Write(ctx, "series/../grid/a.csv", []byte("1")); err != nil {
		t.Fatalf("write: %v", err)
	}
	ok, _ := fs.Exists(ctx, "grid/a.csv")
	if !ok {
		t.Error("cleaned path not written under root")
	}
}

func TestLocalFS_Exists(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	ok, err := fs.Exists(ctx, "missing.csv")
	if err != nil || ok {
		t.Errorf("missing file: ok=%v err=%v", ok, err)
	}

	fs.Write(ctx, "present.csv", []byte("x"))
	ok, err = fs.Exists(ctx, "present.csv")
	if err != nil || !ok {
		t.Errorf("present file: ok=%v err=%v", ok, err)
	}
}

func TestLocalFS_ListAndDelete(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	fs.Write(ctx, "grid/a.csv", []byte("1"))
	fs.Write(ctx, "grid/b.csv", []byte("2"))

	paths, err := fs.List(ctx, "grid")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 paths, got %d: %v", len(paths), paths)
	}

	if err := fs.Delete(ctx, "grid/a.csv"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, _ := fs.Exists(ctx, "grid/a.csv")
	if ok {
		t.Error("deleted file still exists")
	}
}
