package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool // list grouped by pending/done
	JSON   bool // print the final list as JSON instead of a panel
	Config config.Config

	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		return doTUI(opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "tui":
		return doTUI(opt)

	case "batch":
		if len(a) > 1 {
			ui.Fail(opt.Stderr, "usage: todo batch [file]")
			return 2
		}
		in := opt.Stdin
		if len(a) == 1 && a[0] != "-" {
			f, err := os.Open(a[0])
			if err != nil {
				ui.Fail(opt.Stderr, "batch: "+err.Error())
				return 1
			}
			defer f.Close()
			in = f
		}
		return doBatch(in, opt)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

const usage = `# todo

A single-screen todo list. Items live in memory for one session.

## Usage

    todo [flags] [tui]
    todo [flags] batch [file]
    todo help

## Screen keys

- **enter** add the typed text, or save the row being edited
- **tab** switch between the input row and the list
- **space** / **x** toggle done
- **e** edit the selected row, **esc** discards the edit
- **d** delete the selected row
- **q** quit

## Batch commands

One per line, applied to a fresh list. Keys are the numbers shown by ls.

    add <text...>
    done <key>
    undone <key>
    edit <key> <text...>
    rm <key>
    ls

## Flags

- **-config** path to a TOML config (default ./todo.toml)
- **-theme** classic, neon or mono
- **-labels** en or ko
- **-keys** counter or last
- **-group** group ls output by pending/done
- **-json** print the final batch list as JSON
- **-log-level** debug, info, warn or error
`

// PrintHelp writes the usage text, rendered as markdown on a terminal.
func PrintHelp(w io.Writer) {
	if isTTY(w) {
		if out, err := glamour.Render(usage, "dark"); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, usage)
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// -------------- subcommand impls ----------------

func doTUI(opt Options) int {
	cfg := opt.Config
	logger, closeLog, err := logging.Open(cfg.LogFile, logOptions(cfg))
	if err != nil {
		ui.Fail(opt.Stderr, "log: "+err.Error())
		return 1
	}
	defer closeLog()

	labels, err := ui.LabelsByName(cfg.Labels)
	if err != nil {
		ui.Fail(opt.Stderr, err.Error())
		return 2
	}
	st := store.New(append(cfg.StoreOptions(), store.WithLogger(logger))...)
	if err := tui.Run(st, tui.Options{Labels: labels, CharLimit: cfg.CharLimit, Logger: logger}); err != nil {
		ui.Fail(opt.Stderr, err.Error())
		return 1
	}
	return 0
}

func logOptions(cfg config.Config) logging.Options {
	o := logging.DefaultOptions()
	o.Level = cfg.LogLevel
	o.Format = cfg.LogFormat
	return o
}

// batchError carries the exit code a failed batch line maps to.
type batchError struct {
	line int
	code int
	err  error
}

func (e *batchError) Error() string { return fmt.Sprintf("line %d: %v", e.line, e.err) }
func (e *batchError) Unwrap() error { return e.err }

func doBatch(in io.Reader, opt Options) int {
	logger, err := logging.New(opt.Stderr, logOptions(opt.Config))
	if err != nil {
		ui.Fail(opt.Stderr, err.Error())
		return 2
	}
	st := store.New(append(opt.Config.StoreOptions(), store.WithLogger(logger))...)

	if err := runBatch(st, in, opt, logger); err != nil {
		ui.Fail(opt.Stderr, err.Error())
		var be *batchError
		if errors.As(err, &be) {
			return be.code
		}
		return 1
	}

	if opt.JSON {
		if err := jsonstore.Write(opt.Stdout, st.List()); err != nil {
			ui.Fail(opt.Stderr, err.Error())
			return 1
		}
		return 0
	}
	printList(opt.Stdout, st.List(), opt.Group)
	return 0
}

func runBatch(st *store.Store, in io.Reader, opt Options, logger *log.Logger) error {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(st, line, opt); err != nil {
			code := 1
			if errors.Is(err, errUsage) {
				code = 2
			}
			return &batchError{line: n, code: code, err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read batch: %w", err)
	}
	logger.Debug("batch done", "lines", n, "items", st.Len())
	return nil
}

var errUsage = errors.New("usage")

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func execLine(st *store.Store, line string, opt Options) error {
	fields := strings.Fields(line)
	cmd, a := fields[0], fields[1:]

	switch cmd {
	case "add":
		_, err := st.Add(restOf(line, 1))
		return err

	case "done", "undone":
		if len(a) != 1 {
			return usageErr("%s <key>", cmd)
		}
		k, err := parseKey(cmd, a[0])
		if err != nil {
			return err
		}
		return st.Toggle(k, cmd == "done")

	case "edit":
		if len(a) < 1 {
			return usageErr("edit <key> <text...>")
		}
		k, err := parseKey(cmd, a[0])
		if err != nil {
			return err
		}
		return st.Edit(k, restOf(line, 2))

	case "rm":
		if len(a) != 1 {
			return usageErr("rm <key>")
		}
		k, err := parseKey(cmd, a[0])
		if err != nil {
			return err
		}
		return st.Delete(k)

	case "ls":
		printList(opt.Stdout, st.List(), opt.Group)
		return nil
	}
	return usageErr("unknown command %q", cmd)
}

func parseKey(cmd, s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageErr("%s: not a number: %s", cmd, s)
	}
	return k, nil
}

// restOf returns line with its first n fields removed, keeping inner spacing.
func restOf(line string, n int) string {
	s := strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		j := strings.IndexAny(s, " \t")
		if j < 0 {
			return ""
		}
		s = strings.TrimLeft(s[j:], " \t")
	}
	return s
}

// -------------- rendering helpers --------------

func printList(w io.Writer, items []model.Item, group bool) {
	t := ui.Current()
	d, p := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	ui.Panel(w, lines)
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		key := fmt.Sprintf("%2d.", it.Key)
		box := t.Muted.Render(t.BoxUnchecked)
		text := ui.Truncate(it.Text, ui.MaxTextWidth)
		if it.Done {
			box = t.Success.Render(t.BoxChecked)
			text = t.DoneText.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(key), box, text))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
