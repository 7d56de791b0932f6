package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"

	"github.com/google/go-cmp/cmp"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

// runMain runs the babylon command on args with stdin as input and
// returns what it wrote to its output and error output.
func runMain(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(configEnv, "")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cc := &cli.Context{
		In:  io.NopCloser(strings.NewReader(stdin)),
		Out: nopWriteCloser{out},
		Err: nopWriteCloser{errOut},
		Go:  context.Background(),
	}
	err := MainCommand().Run(cc, args)
	return out.String(), errOut.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func exitCode(err error) int {
	var ec cli.ExitCodeErr
	if errors.As(err, &ec) {
		return int(ec)
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestCommands(t *testing.T) {
	nav, page, broken := testdata("nav.bab"), testdata("page.bab"), testdata("broken.bab")
	checkOut := nav + ": ok, 3 nodes\n" +
		broken + ":1:1: unterminated tree: '[a' not closed\n" +
		page + ": ok, 6 nodes\n"
	for _, c := range []struct {
		name  string
		stdin string
		args  []string
		want  string
		// if set, the output need only contain it
		has  string
		code int
	}{
		{
			name: "dump babylon",
			args: []string{"-O", "b", "dump", page},
			want: "[page title=Home\n  [nav\n    [a href=/ home]]\n  [body greeting]]\n",
		},
		{
			name:  "dump path",
			stdin: "[page [nav a] [body b] [nav c]]",
			args:  []string{"-O", "b", "dump", "-path", "/0:page/*:nav"},
			want:  "[nav a]\n[nav c]\n",
		},
		{
			name:  "dump path no match",
			stdin: "[page [nav a]]",
			args:  []string{"-O", "b", "dump", "-path", "/0:page/*:body"},
		},
		{
			name: "check serial",
			args: []string{"check", "-j", "1", nav, broken, page},
			want: checkOut,
			code: 1,
		},
		{
			name: "check concurrent",
			args: []string{"check", "-j", "4", nav, broken, page},
			want: checkOut,
			code: 1,
		},
		{
			name: "check quiet",
			args: []string{"check", "-q", nav, page},
		},
		{
			name:  "fmt stdin",
			stdin: "[a   x=1   b]  [c  [d]]",
			args:  []string{"fmt"},
			want:  "[a x=1 b]\n[c\n  [d]]\n",
		},
		{
			name: "diff equal",
			args: []string{"diff", nav, nav},
		},
		{
			name: "diff stat",
			args: []string{"diff", "-stat", nav, page},
			has:  "nodes inserted",
			code: 1,
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			out, _, err := runMain(t, c.stdin, c.args...)
			if got := exitCode(err); got != c.code {
				t.Fatalf("exit %d want %d: %v", got, c.code, err)
			}
			if c.has != "" {
				if !strings.Contains(out, c.has) {
					t.Errorf("output %q does not contain %q", out, c.has)
				}
				return
			}
			if diff := cmp.Diff(c.want, out); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMacrosCommand(t *testing.T) {
	out, _, err := runMain(t, "", "macros", testdata("site.mac"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, ln := range strings.Split(strings.TrimSpace(out), "\n") {
		name, _, _ := strings.Cut(ln, "\t")
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"greeting", "sig"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestExpandConfiguredMacros(t *testing.T) {
	mac, err := filepath.Abs(testdata("site.mac"))
	if err != nil {
		t.Fatal(err)
	}
	dir := writeFiles(t, map[string]string{
		defaultConfig: "macros = " + `"` + filepath.ToSlash(mac) + `"` + "\n",
	})
	cfg := filepath.Join(dir, defaultConfig)
	out, _, err := runMain(t, "[body greeting] sig", "-config", cfg, "expand")
	if err != nil {
		t.Fatal(err)
	}
	want := "[body\n  [p hello world]]\n[p regards]\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("expand (-want +got):\n%s", diff)
	}
	out, _, err = runMain(t, "[body greeting]", "-config", cfg, "expand", "-m", filepath.Join(dir, "none.mac"))
	if err == nil {
		t.Errorf("missing -m file: no error, output %q", out)
	}
}

func TestFmtWrite(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"plain.bab": "[a   [b  c]]",
		"top.bab":   "[a #include empty.bab b]",
		"empty.bab": "",
		"drop.bab":  "[a #define b]",
	})
	read := func(name string) string {
		t.Helper()
		d, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		return string(d)
	}

	_, errOut, err := runMain(t, "", "fmt", "-w", filepath.Join(dir, "plain.bab"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := read("plain.bab"), "[a\n  [b c]]\n"; got != want {
		t.Errorf("plain: got %q want %q", got, want)
	}
	if !strings.Contains(errOut, "formatted") {
		t.Errorf("log %q", errOut)
	}

	for _, c := range []struct {
		file string
		args []string
		msg  string
	}{
		{file: "top.bab", msg: "would inline"},
		{file: "drop.bab", args: []string{"-unknown", "drop"}, msg: "would remove #define"},
	} {
		args := append(c.args, "fmt", "-w", filepath.Join(dir, c.file))
		before := read(c.file)
		_, _, err := runMain(t, "", args...)
		if err == nil || !strings.Contains(err.Error(), c.msg) {
			t.Errorf("%s: got %v, want %q", c.file, err, c.msg)
		}
		if got := read(c.file); got != before {
			t.Errorf("%s rewritten to %q", c.file, got)
		}
	}
}

func TestLogLevel(t *testing.T) {
	file := filepath.Join(writeFiles(t, map[string]string{"a.bab": "[a  b]"}), "a.bab")
	_, errOut, err := runMain(t, "", "-log", "warn", "fmt", "-w", file)
	if err != nil {
		t.Fatal(err)
	}
	if errOut != "" {
		t.Errorf("warn level logged %q", errOut)
	}

	_, errOut, err = runMain(t, "[a #define b]", "-log", "error", "-unknown", "warn", "fmt")
	if err != nil {
		t.Fatal(err)
	}
	if errOut != "" {
		t.Errorf("error level logged %q", errOut)
	}
	_, errOut, err = runMain(t, "[a #define b]", "-unknown", "warn", "fmt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "level=WARN") || !strings.Contains(errOut, "directive=define") {
		t.Errorf("default level logged %q", errOut)
	}

	cfg := filepath.Join(writeFiles(t, map[string]string{defaultConfig: "log_level = \"error\"\n"}), defaultConfig)
	_, errOut, err = runMain(t, "[a #define b]", "-config", cfg, "-unknown", "warn", "fmt")
	if err != nil {
		t.Fatal(err)
	}
	if errOut != "" {
		t.Errorf("configured level logged %q", errOut)
	}
}
