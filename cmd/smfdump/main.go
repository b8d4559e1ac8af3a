// Command smfdump is the reference dumper: it reads an SMF byte stream and
// writes one human-readable line per event to stdout. Its contract is
// deliberately minimal (spec.md §6): stdin or a single positional path, no
// flags, no environment variables, no persisted state. It exits nonzero
// with the translated error on stderr when the stream is malformed.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/alxayo/smf-go/internal/smf/event"
	"github.com/alxayo/smf-go/internal/smf/source"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	src, err := openSource(args, stdin)
	if err != nil {
		return err
	}
	defer src.Close()

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	e := event.NewEngine(src)
	for {
		rec := e.Next()
		fmt.Fprintln(w, rec.String())
		if rec.Kind == event.KindEOF {
			return nil
		}
		if rec.Kind == event.KindError {
			return fmt.Errorf("smfdump: %s", smferrors.Translate(rec.Err))
		}
	}
}

func openSource(args []string, stdin io.Reader) (source.Source, error) {
	if len(args) == 0 {
		return source.NewReaderSource(stdin), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("smfdump: expected a single path argument, got %d", len(args))
	}
	return source.NewFromPath(args[0])
}
