package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	// Disable color for tests
	color.NoColor = true
}

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	return &buf
}

func TestJSON(t *testing.T) {
	buf := capture(t)

	type result struct {
		ID     string `json:"id"`
		Change string `json:"change"`
	}
	if err := JSON([]result{{ID: "site-500-root", Change: "created"}}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded []result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output is invalid: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "site-500-root" {
		t.Errorf("unexpected decoded value: %+v", decoded)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}

func TestTable(t *testing.T) {
	t.Run("aligned columns", func(t *testing.T) {
		buf := capture(t)
		Table([]string{"ID", "VHOST"}, [][]string{
			{"site-500-root", "site"},
			{"a-500-x", "a"},
		})

		want := "" +
			"ID             VHOST\n" +
			"-------------  -----\n" +
			"site-500-root  site\n" +
			"a-500-x        a\n"
		if buf.String() != want {
			t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
		}
	})

	t.Run("short rows", func(t *testing.T) {
		buf := capture(t)
		Table([]string{"A", "B"}, [][]string{{"1"}})
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 || lines[2] != "1" {
			t.Errorf("unexpected table: %q", buf.String())
		}
	})

	t.Run("no headers", func(t *testing.T) {
		buf := capture(t)
		Table(nil, [][]string{{"x"}})
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestFragment(t *testing.T) {
	buf := capture(t)

	Fragment("site-500-root", "location / {\n}\n")
	Fragment("site-500-api", "no newline")

	want := "# site-500-root\nlocation / {\n}\n# site-500-api\nno newline\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string, ...any)
		prefix string
	}{
		{"Success", Success, "✓ "},
		{"Error", Error, "✗ "},
		{"Warn", Warn, "! "},
		{"Info", Info, "→ "},
		{"Print", Print, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			tt.fn("staged %d fragments", 2)
			want := tt.prefix + "staged 2 fragments\n"
			if buf.String() != want {
				t.Errorf("got %q, want %q", buf.String(), want)
			}
		})
	}
}
