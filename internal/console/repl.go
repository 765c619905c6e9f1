package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const prompt = "> "

// Run reads one command per line from r until EOF or quit. World time only
// advances through commands that spend it (go, wait, chop).
func Run(r io.Reader, w io.Writer, d *Dispatcher) error {
	if _, err := fmt.Fprintln(w, "Timberline. Fell trees, haul logs, repair the dock. Type help for commands."); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	for {
		if _, err := io.WriteString(w, prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}
		reply := d.Submit(scanner.Text())
		if len(reply.Lines) > 0 {
			if _, err := fmt.Fprintln(w, strings.Join(reply.Lines, "\n")); err != nil {
				return err
			}
		}
		if reply.Quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console input: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
