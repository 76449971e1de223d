package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Console is the single point of contact with the human reviewer. All
// annotation flows read answers and print feature displays through it,
// so tests can drive a whole session from a scripted reader.
//
// Ask blocks until a full line arrives. There is deliberately no
// timeout or cancellation: the one suspension point in the system is
// the wait for a human answer.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles
}

// New returns a Console reading answers from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		styles: DefaultStyles(),
	}
}

// NewStdio returns a Console on the process's stdin/stdout.
func NewStdio() *Console {
	return New(os.Stdin, os.Stdout)
}

// NewScript returns a Console that answers prompts from the given
// lines in order and discards output. Test helper.
func NewScript(answers ...string) *Console {
	script := ""
	if len(answers) > 0 {
		script = strings.Join(answers, "\n") + "\n"
	}
	return New(strings.NewReader(script), io.Discard)
}

// Ask prints the label and blocks for one line of input, returned
// trimmed. io.EOF surfaces when the input is exhausted.
func (c *Console) Ask(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Styles exposes the style set for callers composing their own lines.
func (c *Console) Styles() Styles { return c.styles }

// Printf writes an unstyled line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Divider prints the section separator used between features.
func (c *Console) Divider() {
	fmt.Fprintln(c.out, c.styles.Divider.Render(strings.Repeat("-", 32)))
}

// Header prints a bold section header.
func (c *Console) Header(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Header.Render(fmt.Sprintf(format, args...)))
}

// Progress prints the [i/total] marker.
func (c *Console) Progress(i, total int) {
	fmt.Fprintln(c.out, c.styles.Progress.Render(fmt.Sprintf("[%d/%d]", i, total)))
}

// Field prints a labeled value line from the feature display.
func (c *Console) Field(label, value string) {
	fmt.Fprintf(c.out, "%s %s\n",
		c.styles.FieldLabel.Render(label+":"),
		c.styles.FieldValue.Render(value))
}

// Menu prints a 1-based numbered list of choices.
func (c *Console) Menu(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(c.out, c.styles.FieldLabel.Render(title))
	for i, item := range items {
		fmt.Fprintf(c.out, "%s %s\n",
			c.styles.MenuIndex.Render(fmt.Sprintf("%d.", i+1)),
			c.styles.MenuItem.Render(item))
	}
}

// OK prints a success/status line.
func (c *Console) OK(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.OK.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a recoverable-problem line.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Warn.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a rejected-input line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Muted prints a low-emphasis line.
func (c *Console) Muted(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Muted.Render(fmt.Sprintf(format, args...)))
}
