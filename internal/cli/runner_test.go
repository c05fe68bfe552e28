package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

type result struct {
	code           int
	stdout, stderr string
}

func runWith(t *testing.T, args []string, input string, mutate func(*Options)) result {
	t.Helper()
	t.Cleanup(func() { _ = ui.SetTheme("classic") })
	_ = ui.SetTheme("mono")

	var out, errb bytes.Buffer
	opt := Options{
		Config: config.Default(),
		Stdin:  strings.NewReader(input),
		Stdout: &out,
		Stderr: &errb,
	}
	if mutate != nil {
		mutate(&opt)
	}
	code := Run(args, opt)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func snapshotOf(t *testing.T, s string) []model.Item {
	t.Helper()
	var snap struct {
		Items []model.Item `json:"items"`
	}
	if err := json.Unmarshal([]byte(s), &snap); err != nil {
		t.Fatalf("decode snapshot: %v\n%s", err, s)
	}
	return snap.Items
}

func asJSON(o *Options) { o.JSON = true }

func TestBatchScenario(t *testing.T) {
	script := `# the walk-through
add buy milk
add walk dog
done 1
edit 2 walk cat
rm 1
`
	r := runWith(t, []string{"batch"}, script, asJSON)
	if r.code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", r.code, r.stderr)
	}
	items := snapshotOf(t, r.stdout)
	if len(items) != 1 || items[0] != (model.Item{Key: 2, Text: "walk cat"}) {
		t.Fatalf("unexpected final list: %+v", items)
	}
}

func TestBatchKeepsInnerSpacing(t *testing.T) {
	r := runWith(t, []string{"batch"}, "add  two  spaces\nedit 1 a   b\n", asJSON)
	if r.code != 0 {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if items := snapshotOf(t, r.stdout); items[0].Text != "a   b" {
		t.Fatalf("unexpected text %q", items[0].Text)
	}
}

func TestBatchKeyPolicies(t *testing.T) {
	script := "add a\nrm 1\nadd b\n"

	r := runWith(t, []string{"batch"}, script, asJSON)
	if items := snapshotOf(t, r.stdout); items[0].Key != 2 {
		t.Fatalf("counter policy: expected key 2, got %+v", items)
	}

	r = runWith(t, []string{"batch"}, script, func(o *Options) {
		o.JSON = true
		o.Config.KeyPolicy = "last"
	})
	if items := snapshotOf(t, r.stdout); items[0].Key != 1 {
		t.Fatalf("last policy: expected key 1, got %+v", items)
	}
}

func TestBatchUnknownKeyExitsOne(t *testing.T) {
	r := runWith(t, []string{"batch"}, "add a\ndone 5\n", nil)
	if r.code != 1 {
		t.Fatalf("expected exit 1, got %d", r.code)
	}
	if !strings.Contains(r.stderr, "line 2") || !strings.Contains(r.stderr, "not found") {
		t.Fatalf("unexpected stderr: %q", r.stderr)
	}
}

func TestBatchUsageErrorsExitTwo(t *testing.T) {
	for _, script := range []string{"done\n", "rm x\n", "fly away\n", "edit\n"} {
		r := runWith(t, []string{"batch"}, script, nil)
		if r.code != 2 {
			t.Fatalf("%q: expected exit 2, got %d (%s)", script, r.code, r.stderr)
		}
		if !strings.Contains(r.stderr, "usage") {
			t.Fatalf("%q: expected usage in stderr: %q", script, r.stderr)
		}
	}
}

func TestBatchRejectEmpty(t *testing.T) {
	r := runWith(t, []string{"batch"}, "add\n", func(o *Options) { o.Config.RejectEmpty = true })
	if r.code != 1 || !strings.Contains(r.stderr, "empty text") {
		t.Fatalf("expected empty text failure, got %d %q", r.code, r.stderr)
	}
}

func TestBatchPanelOutput(t *testing.T) {
	r := runWith(t, []string{"batch"}, "add buy milk\nadd walk dog\ndone 2\n", nil)
	if r.code != 0 {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	for _, want := range []string{"Todos", "x 1", "- 1", "Total 2", " 1. [ ] buy milk", " 2. [x] walk dog", "50%"} {
		if !strings.Contains(r.stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, r.stdout)
		}
	}
}

func TestBatchGroupedOutput(t *testing.T) {
	r := runWith(t, []string{"batch"}, "add a\nadd b\ndone 1\n", func(o *Options) { o.Group = true })
	out := r.stdout
	pi, di := strings.Index(out, "Pending"), strings.Index(out, "Done")
	if pi < 0 || di < 0 || pi > di {
		t.Fatalf("expected Pending then Done sections:\n%s", out)
	}
	if !strings.Contains(out[pi:di], "b") || !strings.Contains(out[di:], "[x] a") {
		t.Fatalf("items in wrong groups:\n%s", out)
	}
}

func TestBatchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.todo")
	if err := os.WriteFile(path, []byte("add from file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := runWith(t, []string{"batch", path}, "", asJSON)
	if items := snapshotOf(t, r.stdout); len(items) != 1 || items[0].Text != "from file" {
		t.Fatalf("unexpected items: %+v", items)
	}

	r = runWith(t, []string{"batch", filepath.Join(t.TempDir(), "missing")}, "", nil)
	if r.code != 1 {
		t.Fatalf("expected exit 1 for missing file, got %d", r.code)
	}
}

func TestHelpAndUnknown(t *testing.T) {
	r := runWith(t, []string{"help"}, "", nil)
	if r.code != 0 || !strings.Contains(r.stdout, "todo [flags] batch [file]") {
		t.Fatalf("unexpected help: %d %q", r.code, r.stdout)
	}

	r = runWith(t, []string{"frobnicate"}, "", nil)
	if r.code != 2 || !strings.Contains(r.stderr, "unknown subcommand: frobnicate") {
		t.Fatalf("unexpected result: %d %q", r.code, r.stderr)
	}
}

func TestRestOf(t *testing.T) {
	tests := []struct {
		line string
		n    int
		want string
	}{
		{"add buy milk", 1, "buy milk"},
		{"edit 2  walk  cat", 2, "walk  cat"},
		{"add", 1, ""},
		{"edit 3", 2, ""},
	}
	for _, tc := range tests {
		if got := restOf(tc.line, tc.n); got != tc.want {
			t.Fatalf("restOf(%q, %d) = %q, want %q", tc.line, tc.n, got, tc.want)
		}
	}
}

func TestIsTTY(t *testing.T) {
	if isTTY(&bytes.Buffer{}) {
		t.Fatal("a buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isTTY(f) {
		t.Fatal("a regular file is not a terminal")
	}
}

func TestBatchPanelKeepsWideText(t *testing.T) {
	long := strings.Repeat("가", 50)
	r := runWith(t, []string{"batch"}, "add "+strings.Repeat("가", 28)+"\nadd "+long+"\n", nil)
	if r.code != 0 {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !utf8.ValidString(r.stdout) {
		t.Fatalf("panel is not valid UTF-8:\n%q", r.stdout)
	}
	if !strings.Contains(r.stdout, strings.Repeat("가", 28)) || strings.Contains(r.stdout, long) {
		t.Fatalf("unexpected truncation:\n%s", r.stdout)
	}
}
