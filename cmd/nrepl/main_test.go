package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/numrange/rangeset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

func TestEvalSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.repl")
	defer teardown()
	//
	intp := NewIntp(rangeset.DefaultMaxStoreSize)
	var session = []struct {
		line   string
		result string
	}{
		{"def a !1..2,3..4,-10..-5", "a = !-10..-5,1..4"},
		{"in 4", "true"},
		{"in 0 1 -5", "[false true true]"},
		{"all 1 2 3", "true"},
		{"add 10-12", "a = !-10..-5,1..4,10..12"},
		{"del 1 2", "a = !-10..-5,3..4,10..12"},
		{"size", "11"},
		{"def b 10..20 25..30", "b = 10..20,25..30"},
		{"size", "17"},
		{"use a", "a = !-10..-5,3..4,10..12"},
		{"max 50", "max store size of a = 50"},
		{"list", "a = !-10..-5,3..4,10..12\nb = 10..20,25..30"},
	}
	for _, step := range session {
		result, quit, err := intp.Eval(step.line)
		if err != nil {
			t.Errorf("%q: unexpected error %v", step.line, err)
			continue
		}
		if quit {
			t.Errorf("%q: unexpected quit", step.line)
		}
		if result != step.result {
			t.Errorf("%q: expected %q, got %q", step.line, step.result, result)
		}
	}
	if _, quit, _ := intp.Eval("quit"); !quit {
		t.Errorf("expected 'quit' to quit")
	}
}

func TestEvalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.repl")
	defer teardown()
	//
	intp := NewIntp(rangeset.DefaultMaxStoreSize)
	for _, line := range []string{"show", "frobnicate", "def", "use x"} {
		if _, _, err := intp.Eval(line); err == nil {
			t.Errorf("expected %q to fail", line)
		}
	}
	intp.Eval("def a 1..3")
	for _, line := range []string{"add 1..", "in x", "max abc"} {
		if _, _, err := intp.Eval(line); err == nil {
			t.Errorf("expected %q to fail", line)
		}
	}
	if result, _, _ := intp.Eval("show"); result != "a = 1..3" {
		t.Errorf("expected set to be unchanged by failing commands, is %q", result)
	}
}

func TestArrayTooLarge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.repl")
	defer teardown()
	//
	intp := NewIntp(rangeset.DefaultMaxStoreSize)
	intp.Eval("def huge 0..1000000000000000")
	if _, _, err := intp.Eval("array"); !errors.Is(err, rangeset.ErrOverflow) {
		t.Errorf("expected 'array' to report an overflow, got %v", err)
	}
	if result, _, err := intp.Eval("size"); err != nil || result != "1000000000000001" {
		t.Errorf("expected size 1000000000000001, got %q (%v)", result, err)
	}
}

func TestStoreList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.repl")
	defer teardown()
	//
	intp := NewIntp(10)
	intp.Eval("def x 1..3 5 100..200")
	ll := storeList(intp.current)
	var texts []string
	for _, item := range ll {
		texts = append(texts, item.Text)
	}
	if s := strings.Join(texts, "|"); s != "x|members|1..3,5|intervals|100..200" {
		t.Errorf("unexpected store list %q", s)
	}
}

func TestInitFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.repl")
	defer teardown()
	//
	fname := filepath.Join(t.TempDir(), "init.nr")
	content := "# demo\ndef w 1..5\n\nadd 7\n"
	if err := os.WriteFile(fname, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	intp := NewIntp(rangeset.DefaultMaxStoreSize)
	intp.loadInitFile(fname)
	if tag := intp.symbols.ResolveTag("w"); tag == nil || tag.Set.String() != "1..5,7" {
		t.Errorf("expected init file to define w = 1..5,7, have %v", tag)
	}
}

func TestSymbolTable(t *testing.T) {
	symtab := NewSymbolTable()
	tag, old := symtab.DefineTag("s", rangeset.MustParse("1"))
	if tag == nil || old != nil {
		t.Fatalf("expected new tag without predecessor")
	}
	if _, old = symtab.DefineTag("s", rangeset.MustParse("2")); old != tag {
		t.Errorf("expected tag to be replaced")
	}
	if tag, _ = symtab.DefineTag("", nil); tag != nil {
		t.Errorf("expected empty tag name to be rejected")
	}
	if symtab.Size() != 1 || symtab.ResolveTag("s").Set.String() != "2" {
		t.Errorf("expected a single tag s = 2")
	}
}
