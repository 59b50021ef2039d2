// Package pte contains a CLI-driven engine for previewing how input text is
// bound to the parameters of a solution function. It reads one input case at
// a time per a row policy, binds every parameter the same way a generated
// entry point would, and shows the result until input ends or the user quits.
package pte

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/pte/entry"
	"github.com/dekarrin/pte/internal/gen"
	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/dekarrin/pte/internal/signature"
	"github.com/dekarrin/pte/lines"
	"github.com/dekarrin/rosed"
	"go.uber.org/zap"
)

// QuitCommand is the input line that ends a session when it starts a case.
const QuitCommand = "QUIT"

const consoleOutputWidth = 80

// Engine contains the things needed to run a preview session from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	sig         signature.Signature
	rows        gen.Policy
	binders     []lines.Binder
	in          entry.Reader
	out         *bufio.Writer
	log         *zap.Logger
	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams, previewing the function funcName declared in the Go source file at
// sourcePath with the row policy given in its textual form.
//
// If nil is given for the input stream, os.Stdin is used. If nil is given for
// the output stream, os.Stdout is used. Readline is used for input only when
// both are the process's stdin and stdout and forceDirectInput is false. If
// log is nil, nothing is logged.
func New(inputStream io.Reader, outputStream io.Writer, sourcePath, funcName, rows string, forceDirectInput bool, log *zap.Logger) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if log == nil {
		log = zap.NewNop()
	}

	sig, err := signature.ParseFile(sourcePath, funcName)
	if err != nil {
		return nil, err
	}

	policy, err := gen.ParsePolicy(rows)
	if err != nil {
		return nil, err
	}
	if err := policy.Validate(sig); err != nil {
		return nil, err
	}

	eng := &Engine{
		sig:         sig,
		rows:        policy,
		out:         bufio.NewWriter(outputStream),
		log:         log,
		forceDirect: forceDirectInput,
	}

	for _, p := range sig.Params {
		b, ok := lines.BinderFor(p.Elem, p.Shape)
		if !ok {
			return nil, pteerrors.Userf("Parameter %s has type %s, which cannot be read from input", p.Name, p.Type())
		}
		eng.binders = append(eng.binders, b)
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = entry.NewInteractiveReader("> ")
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = entry.NewDirectReader(inputStream)
	}

	log.Debug("engine ready", zap.Stringer("signature", sig), zap.Stringer("rows", policy), zap.Bool("readline", useReadline))
	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// RunUntilQuit reads input cases from the input stream and shows how each is
// bound until the input ends or a case starts with QuitCommand.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Previewing " + eng.sig.String() + "\n"
	introMsg += "Rows: " + eng.rows.String()
	if eng.forceDirect {
		introMsg += " (direct input mode)"
	}
	introMsg += "\n"
	introMsg += strings.Repeat("=", 27) + "\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for caseNum := 1; eng.running; caseNum++ {
		text, err := entry.ReadText(eng.in, eng.rows.Rows())
		if err == io.EOF {
			break
		}
		if err != nil {
			// a bad count header only costs that one line
			if !errors.Is(err, entry.ErrNoCount) {
				return fmt.Errorf("get input case: %w", err)
			}
			if err := eng.write(eng.wrap(err.Error()) + "\n"); err != nil {
				return err
			}
			continue
		}

		if strings.TrimSpace(firstLine(text)) == QuitCommand {
			break
		}

		output, err := eng.Preview(lines.New(text))
		if err != nil {
			return fmt.Errorf("case %d: %w", caseNum, err)
		}
		eng.log.Debug("previewed case", zap.Int("case", caseNum), zap.Int("bytes", len(text)))

		if err := eng.write(fmt.Sprintf("Case %d\n%s\n\n", caseNum, output)); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// Preview binds every parameter from buf in order, reading more input when
// the row policy depends on a parameter, and returns a table of the bound
// values. Binding stops at the first parameter with no input left, which is
// noted in the output.
func (eng *Engine) Preview(buf *lines.Lines) (string, error) {
	data := [][]string{{"Param", "Type", "Value"}}
	var missing string

	for i, p := range eng.sig.Params {
		v, ok := eng.binders[i].Bind(buf)
		if !ok {
			missing = p.Name
			break
		}
		data = append(data, []string{p.Name, p.Type(), formatValue(p.Elem, v)})

		if eng.rows.Kind == gen.PolicyParam && p.Name == eng.rows.Param {
			n, _ := asCount(v)
			if n == 0 {
				continue
			}
			more, err := entry.ReadText(eng.in, entry.Fixed(n))
			if err != nil && err != io.EOF {
				return "", fmt.Errorf("read %d rows for %s: %w", n, p.Name, err)
			}
			if err == nil {
				buf.Extend(more)
			}
		}
	}

	output := rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	if missing != "" {
		output += "\n" + eng.wrap(fmt.Sprintf("No input left for parameter %q; a generated main would exit here.", missing))
	}
	return output, nil
}

func (eng *Engine) wrap(s string) string {
	return rosed.Edit(s).Wrap(consoleOutputWidth).String()
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func firstLine(text string) string {
	if idx := strings.Index(text, lines.LineSeparator); idx >= 0 {
		return text[:idx]
	}
	return text
}

// formatValue renders a value bound for a parameter whose element type is
// elem. Strings are quoted so empty ones show up; runes and bytes are shown
// as quoted characters, which the dynamic type alone cannot tell apart from
// int32 and uint8.
func formatValue(elem string, v any) string {
	switch elem {
	case "string", "rune", "byte":
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asCount converts an integer value bound by a lines.Binder to a row count.
// Negative counts become 0.
func asCount(v any) (int, bool) {
	var n int64
	switch tv := v.(type) {
	case int:
		n = int64(tv)
	case int8:
		n = int64(tv)
	case int16:
		n = int64(tv)
	case int32:
		n = int64(tv)
	case int64:
		n = tv
	case uint:
		n = int64(tv)
	case uint8:
		n = int64(tv)
	case uint16:
		n = int64(tv)
	case uint32:
		n = int64(tv)
	case uint64:
		n = int64(tv)
	default:
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	return int(n), true
}
