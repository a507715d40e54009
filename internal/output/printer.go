package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jq"
	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/ryo246912/gh-rest-bindings/pkg/github"
)

const indent = "  "

// Printer writes command results to a terminal or a pipe
type Printer struct {
	out   io.Writer
	isTTY bool
	width int
	color bool
	jq    string
}

// New creates a printer bound to the process terminal
func New(t term.Term, jqExpr string) *Printer {
	width := 80
	if t.IsTerminalOutput() {
		if w, _, err := t.Size(); err == nil && w > 0 {
			width = w
		}
	}
	return &Printer{
		out:   t.Out(),
		isTTY: t.IsTerminalOutput(),
		width: width,
		color: t.IsColorEnabled(),
		jq:    jqExpr,
	}
}

// NewWriter creates a printer writing to w without color
func NewWriter(w io.Writer, isTTY bool, width int, jqExpr string) *Printer {
	return &Printer{out: w, isTTY: isTTY, width: width, jq: jqExpr}
}

// Rows fills a table from a typed value
type Rows[T any] func(tp tableprinter.TablePrinter, v T)

// Print renders res according to the format it was decoded with.
// Typed values go through rows when no jq filter is set.
func Print[T any](p *Printer, res *github.Result[T], rows Rows[T]) error {
	if res == nil {
		return nil
	}
	switch res.Format {
	case github.FormatRaw:
		return p.raw(res.Raw)
	case github.FormatJSON:
		return p.json(res.JSON)
	}

	if p.jq == "" && rows != nil {
		tp := tableprinter.New(p.out, p.isTTY, p.width)
		rows(tp, res.Value)
		return tp.Render()
	}
	return p.json(res.Value)
}

// Status prints a one-line outcome of a no-content call
func (p *Printer) Status(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) raw(body string) error {
	if p.jq != "" {
		return p.filter(strings.NewReader(body))
	}
	if body == "" {
		return nil
	}
	if _, err := io.WriteString(p.out, body); err != nil {
		return err
	}
	if !strings.HasSuffix(body, "\n") {
		_, err := io.WriteString(p.out, "\n")
		return err
	}
	return nil
}

func (p *Printer) json(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if p.jq != "" {
		return p.filter(bytes.NewReader(b))
	}
	return jsonpretty.Format(p.out, bytes.NewReader(b), indent, p.color)
}

func (p *Printer) filter(r io.Reader) error {
	if err := jq.EvaluateFormatted(r, p.out, p.jq, indent, p.color); err != nil {
		return fmt.Errorf("failed to apply jq filter: %w", err)
	}
	return nil
}
