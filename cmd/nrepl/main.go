package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/numrange/rangeset"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

const helpText = `commands:
  def NAME SPEC…   define a named range set and make it current
  use NAME         make a defined set the current set
  add SPEC…        add a range specification to the current set
  del SPEC…        delete a range specification from the current set
  in V…            test values for membership, one result per value
  all V…           test if all values are members
  show             print the current set in canonical form
  array            print all values of the current set
  size             print the number of values of the current set
  max N            set the max width of spans stored as single values
  tree             display the stores of the current set
  fp               print a fingerprint of the current set
  list             list all defined sets
  quit             leave N.REPL`

// main() starts an interactive CLI ("N.REPL"), where users may define range
// sets and operate on them. Arguments on the command line are taken as a
// range specification for an initial set named "_".
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	maxSize := flag.Int64("max", rangeset.DefaultMaxStoreSize, "Max width of spans stored as single values")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to N.REPL")  // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	//
	intp := NewIntp(*maxSize)
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if _, _, err := intp.Eval("def _ " + input); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	//
	// set up REPL
	repl, err := readline.New("nrepl> ")
	if err != nil {
		tracer().Errorf("%s", err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	symbols *SymbolTable
	current *Tag
	maxSize int64
}

// NewIntp creates an interpreter. New sets will use maxSize as their
// threshold for storing spans as intervals.
func NewIntp(maxSize int64) *Intp {
	return &Intp{
		symbols: NewSymbolTable(),
		maxSize: maxSize,
	}
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" || strings.HasPrefix(line, "#") {
			lineno++
			continue
		}
		if _, _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %s", lineno, err.Error())
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %s", err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		result, quit, err := intp.Eval(line)
		intp.printResult(result, err)
		if quit {
			break
		}
	}
	println("Good bye!")
}

func (intp *Intp) printResult(result string, err error) {
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if result != "" {
		pterm.Info.Println(result)
	}
}

// --- Commands --------------------------------------------------------------

type command func(intp *Intp, args []string) (string, error)

var commands = map[string]command{
	"def":   defCmd,
	"use":   useCmd,
	"add":   addCmd,
	"del":   delCmd,
	"in":    inCmd,
	"all":   allCmd,
	"show":  showCmd,
	"array": arrayCmd,
	"size":  sizeCmd,
	"max":   maxCmd,
	"tree":  treeCmd,
	"fp":    fingerprintCmd,
	"list":  listCmd,
}

// Eval evaluates a command line. It returns the command's result text and
// a flag signalling the user wants to quit.
func (intp *Intp) Eval(line string) (string, bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", false, nil
	}
	cmd := strings.ToLower(args[0])
	tracer().Debugf("command %q with %d argument(s)", cmd, len(args)-1)
	switch cmd {
	case "quit", "exit":
		return "", true, nil
	case "help", "?":
		return helpText, false, nil
	}
	c, ok := commands[cmd]
	if !ok {
		return "", false, fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	result, err := c(intp, args[1:])
	return result, false, err
}

func (intp *Intp) currentSet() (*rangeset.RangeSet, error) {
	if intp.current == nil {
		return nil, fmt.Errorf("no current set, define one with 'def NAME SPEC'")
	}
	return intp.current.Set, nil
}

func defCmd(intp *Intp, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: def NAME SPEC…")
	}
	set, err := rangeset.New(args[1:], rangeset.WithMaxStoreSize(intp.maxSize))
	if err != nil {
		return "", err
	}
	tag, old := intp.symbols.DefineTag(args[0], set)
	if old != nil {
		tracer().Infof("re-defining %s", old.Name())
	}
	intp.current = tag
	return fmt.Sprintf("%s = %s", tag.Name(), set), nil
}

func useCmd(intp *Intp, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: use NAME")
	}
	tag := intp.symbols.ResolveTag(args[0])
	if tag == nil {
		return "", fmt.Errorf("no set named %q", args[0])
	}
	intp.current = tag
	return fmt.Sprintf("%s = %s", tag.Name(), tag.Set), nil
}

func addCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	if err = set.AddRange(args...); err != nil {
		return "", err
	}
	return showCmd(intp, nil)
}

func delCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	if err = set.DelRange(args...); err != nil {
		return "", err
	}
	return showCmd(intp, nil)
}

func values(args []string) ([]int64, error) {
	ns := make([]int64, len(args))
	for i, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", arg)
		}
		ns[i] = n
	}
	return ns, nil
}

func inCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	ns, err := values(args)
	if err != nil {
		return "", err
	}
	if len(ns) == 1 {
		return strconv.FormatBool(set.InRange(ns[0])), nil
	}
	return fmt.Sprint(set.InRangeEach(ns)), nil
}

func allCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	ns, err := values(args)
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(set.InRangeAll(ns...)), nil
}

func showCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", intp.current.Name(), set), nil
}

func arrayCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	arr, err := set.Array()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(arr), nil
}

func sizeCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(set.Size(), 10), nil
}

func maxCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	if len(args) != 1 {
		return strconv.FormatInt(set.MaxStoreSize(), 10), nil
	}
	n, err := set.SetMaxStoreSize(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("max store size of %s = %d", intp.current.Name(), n), nil
}

func fingerprintCmd(intp *Intp, args []string) (string, error) {
	set, err := intp.currentSet()
	if err != nil {
		return "", err
	}
	return set.Fingerprint()
}

func listCmd(intp *Intp, args []string) (string, error) {
	var b strings.Builder
	intp.symbols.Each(func(name string, tag *Tag) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %s", name, tag.Set)
	})
	return b.String(), nil
}

// treeCmd is a helper command to display the stores of a set as a tree
// on a terminal
func treeCmd(intp *Intp, args []string) (string, error) {
	if _, err := intp.currentSet(); err != nil {
		return "", err
	}
	root := pterm.NewTreeFromLeveledList(storeList(intp.current))
	pterm.DefaultTree.WithRoot(root).Render()
	return "", nil
}

// storeList lists the member store (in compact notation) and the interval store
// of a set, indented by store.
func storeList(tag *Tag) pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: tag.Name()}}
	members := rangeset.MustParse("")
	members.AddNumbers(tag.Set.Members()...)
	ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "members"})
	if s := members.String(); s != "" {
		ll = append(ll, pterm.LeveledListItem{Level: 2, Text: s})
	}
	ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "intervals"})
	for _, iv := range tag.Set.Intervals() {
		ll = append(ll, pterm.LeveledListItem{Level: 2, Text: iv.String()})
	}
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
