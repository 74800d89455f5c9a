package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/charstring"
	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.charstring'
func tracer() tracing.Trace {
	return tracing.Select("font.charstring")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.font.charstring": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	progname := flag.String("prog", "", "Glyph program fixture to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the charstring CLI")
	//
	// set up REPL
	repl, err := readline.New("cs > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, format: cs.Type2}
	//
	// load glyph programs to use, if any
	if *progname != "" {
		if err := intp.loadProgram(*progname); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object. It holds the settings which ad-hoc
// charstrings are decoded and rendered with.
type Intp struct {
	repl    *readline.Instance
	format  cs.Format
	nominal float32
	dflt    float32
	subrs   [][]byte
	gsubrs  [][]byte
	prog    *charstring.Program // loaded glyph programs, may be nil
}

func (intp *Intp) String() string {
	if intp == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( %s subrs=%d", intp.format, len(intp.subrs)))
	if intp.format == cs.Type2 {
		sb.WriteString(fmt.Sprintf(" gsubrs=%d nominal=%g default=%g",
			len(intp.gsubrs), intp.nominal, intp.dflt))
	}
	sb.WriteString(" )")
	if intp.prog != nil {
		sb.WriteString(fmt.Sprintf(" -> %s", intp.prog.Name))
	}
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single step of a command line, e.g. "nominal:500".
type Op struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	TYPE1
	TYPE2
	NOMINAL
	DEFAULT
	SUBR
	GSUBR
	DECODE
	RENDER
	BIAS
	LOAD
	GLYPH
	INFO
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"type1":   TYPE1,
	"type2":   TYPE2,
	"nominal": NOMINAL,
	"default": DEFAULT,
	"subr":    SUBR,
	"gsubr":   GSUBR,
	"decode":  DECODE,
	"render":  RENDER,
	"bias":    BIAS,
	"load":    LOAD,
	"glyph":   GLYPH,
	"info":    INFO,
}

// parseCommand splits a command line into steps. Unknown operations are
// mapped to HELP.
func parseCommand(line string) []Op {
	steps := strings.Fields(line)
	ops := make([]Op, 0, len(steps))
	for _, step := range steps {
		name, arg, _ := strings.Cut(step, ":") // e.g. "decode:8b8b15" or "type1"
		code, ok := opMap[strings.ToLower(name)]
		if !ok {
			code, arg = HELP, ""
		}
		tracer().Debugf("parsed command: %s %q", name, arg)
		ops = append(ops, Op{code: code, arg: arg})
		if code == QUIT {
			break
		}
	}
	return ops
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	TYPE1:   formatOp,
	TYPE2:   formatOp,
	NOMINAL: widthOp,
	DEFAULT: widthOp,
	SUBR:    subrOp,
	GSUBR:   subrOp,
	DECODE:  decodeOp,
	RENDER:  renderOp,
	BIAS:    biasOp,
	LOAD:    loadOp,
	GLYPH:   glyphOp,
	INFO:    infoOp,
}

func (intp *Intp) execute(cmd []Op) (err error, stop bool) {
	for _, c := range cmd {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}
