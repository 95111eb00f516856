package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

type checkResult struct {
	Name    string `json:"check"`
	Passed  bool   `json:"passed"`
	Detail  string `json:"detail" table:"wide"`
	private int
}

type kindStringer int

func (k kindStringer) String() string { return "uint32" }

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestTableFormatter_Table(t *testing.T) {
	table := &Table{}
	table.SetHeaders("NAME", "VALUE")
	table.AddRow("stack_size", "16384")

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := lines(buf.String())
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), buf.String())
	}
	if !strings.HasPrefix(got[0], "NAME") || !strings.Contains(got[1], "16384") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "NAME") {
		t.Error("NoHeaders should omit the header row")
	}
}

func TestTableFormatter_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format(nil) wrote %q", buf.String())
	}
}

func TestTableFormatter_Slice(t *testing.T) {
	rows := []checkResult{
		{Name: "nested init", Passed: true, Detail: "refs=3"},
		{Name: "tidx isolation", Passed: false, Detail: "worker 3 saw 4"},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "CHECK") || !strings.Contains(out, "PASSED") {
		t.Errorf("headers missing: %q", out)
	}
	if strings.Contains(out, "DETAIL") {
		t.Error("wide column shown without wide mode")
	}
	if strings.Contains(out, "PRIVATE") {
		t.Error("unexported field shown")
	}
	if !strings.Contains(out, "tidx isolation") || !strings.Contains(out, "false") {
		t.Errorf("rows missing: %q", out)
	}

	buf.Reset()
	if err := (&TableFormatter{Wide: true}).Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "DETAIL") || !strings.Contains(buf.String(), "worker 3 saw 4") {
		t.Errorf("wide output missing detail column: %q", buf.String())
	}
}

func TestTableFormatter_PointerSlice(t *testing.T) {
	rows := []*checkResult{{Name: "a", Passed: true}, nil}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := len(lines(buf.String())); got != 2 {
		t.Errorf("got %d lines, want header and one row", got)
	}
}

func TestTableFormatter_MapSorted(t *testing.T) {
	data := map[string]any{
		"stack_size":     uint32(16384),
		"max_match_data": uint32(512),
		"kind":           kindStringer(1),
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := lines(buf.String())
	var keys []string
	for _, l := range got[1:] {
		keys = append(keys, strings.Fields(l)[0])
	}
	want := []string{"kind", "max_match_data", "stack_size"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	if !strings.Contains(got[1], "uint32") {
		t.Errorf("Stringer not used: %q", got[1])
	}
}

func TestTableFormatter_Struct(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, checkResult{Name: "x", Passed: true}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "FIELD") || !strings.Contains(out, "check") || !strings.Contains(out, "detail") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTableFormatter_FallbackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, 42); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "42" {
		t.Errorf("fallback output = %q, want 42", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	var nilPtr *int
	n := 7
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "abc", "abc"},
		{"empty string", "", "-"},
		{"int", -3, "-3"},
		{"uint64", uint64(1 << 30), "1073741824"},
		{"float", 1.5, "1.50"},
		{"bool", true, "true"},
		{"nil pointer", nilPtr, "-"},
		{"pointer", &n, "7"},
		{"empty slice", []int{}, "-"},
		{"slice", []int{1, 2}, "[2 items]"},
		{"stringer", kindStringer(0), "uint32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(reflect.ValueOf(tt.in)); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"StackSize":    "stack_size",
		"Name":         "name",
		"MaxMatchData": "max_match_data",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTable_Records(t *testing.T) {
	table := &Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3"}}}

	got := table.Records()
	want := []map[string]string{{"a": "1", "b": "2"}, {"a": "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Records() = %v, want %v", got, want)
	}
}
