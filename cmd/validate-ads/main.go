package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/adbridge/pkg/validate"
)

// Коды выхода.
const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

// CLI-приложение для проверки выгрузок событий объявлений (JSON / JSONL).
// Валидные события печатаются в stdout в каноническом виде, итог и проблемные записи — в stderr.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate-ads", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("in", validate.StdinPath, `path to input (.json or .jsonl), "-" reads stdin`)
	formatStr := fs.String("format", string(validate.FormatAuto), "input format: auto|json|jsonl")
	strict := fs.Bool("strict", false, "exit with code 2 if any record is invalid")
	quiet := fs.Bool("quiet", false, "do not list invalid records")
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := validate.ValidateFile(ctx, validate.NewAdValidator(), *inputPath, validate.InputFormat(*formatStr), stdout)

	if !*quiet {
		for _, is := range rep.Issues {
			fmt.Fprintf(stderr, "#%d uuid=%q: %s\n", is.Pos, is.UUID, is.Err)
		}
		if rep.Truncated {
			fmt.Fprintf(stderr, "... more invalid records not listed\n")
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v (%s)\n", err, rep.Summary())
		return exitFailure
	}

	fmt.Fprintf(stderr, "validation done (%s)", rep.Summary())
	if line := rep.StatusLine(); line != "" {
		fmt.Fprintf(stderr, " [%s]", line)
	}
	fmt.Fprintln(stderr)

	if *strict && rep.Invalid > 0 {
		return exitInvalid
	}
	return exitOK
}
