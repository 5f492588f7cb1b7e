package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framekit/tableio"
)

// run executes the root command with args and returns its output. Flag
// variables are reset first since the commands are package-level.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	selectColumns, limitRows = nil, -1
	headRows, describe = 10, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.jsonl", "{\"id\": 1, \"name\": \"a\", \"x\": 0.5}\n{\"id\": 2, \"name\": \"b\"}\n{\"id\": 3}\n")
	dst := filepath.Join(dir, "out.csv")

	out, err := run(t, "convert", src, dst, "--select", "name,id", "--limit", "2")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.Contains(out, "Wrote 2 rows x 2 columns") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got, want := string(data), "name,id\na,1\nb,2\n"; got != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestConvert_ReadOnlyDestination(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.csv", "name,id\na,1\n")
	dst := filepath.Join(dir, "out.ndjson")

	_, err := run(t, "convert", src, dst)
	if !errors.Is(err, tableio.ErrUnsupportedWriteMode) {
		t.Errorf("convert error = %v, want ErrUnsupportedWriteMode", err)
	}
}

func TestConvert_FlagsDoNotCarryOver(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.csv", "a,b\n1,x\n2,y\n3,z\n")

	if _, err := run(t, "convert", src, filepath.Join(dir, "first.csv"), "--select", "b", "--limit", "1"); err != nil {
		t.Fatalf("convert error = %v", err)
	}

	dst := filepath.Join(dir, "second.csv")
	if _, err := run(t, "convert", src, dst); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got, want := string(data), "a,b\n1,x\n2,y\n3,z\n"; got != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.csv", "id,score,name\n1,1.5,a\n2,,b\n3,4.5,\n")

	out, err := run(t, "inspect", path, "--head", "2", "--describe")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"Columns: 3", "id: i64", "score: f64", "name: str", "null", "Rows: 3", "median"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormats(t *testing.T) {
	out, err := run(t, "formats")
	if err != nil {
		t.Fatalf("formats error = %v", err)
	}
	for _, want := range []string{"ndjson,jsonl", "hdvb", "hdvt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
