package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/deosjr/scurry/config"
	"github.com/deosjr/scurry/prelude"
	"github.com/deosjr/scurry/scurry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one program file and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, rest, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if len(rest) < 1 {
		fmt.Fprintln(stdout, "Incorrect number of arguments: expecting source file as argument")
		return 1
	}
	filename := rest[0]
	entry := logger.WithField("file", filename)

	src, err := os.ReadFile(filename)
	if err != nil {
		entry.WithError(err).Debug("read failed")
		fmt.Fprintf(stdout, "Error reading file: %s\n", filename)
		return 1
	}
	tokens, err := scurry.Tokenize(string(src))
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}
	entry.WithField("tokens", len(tokens)).Debug("tokenized")
	if cfg.Dump == config.DumpTokens {
		return dump(stdout, stderr, func() ([]byte, error) { return scurry.DumpTokens(tokens) })
	}
	block, err := scurry.Parse(tokens)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}
	entry.WithField("expressions", len(block)).Debug("parsed")
	if cfg.Dump == config.DumpAST {
		return dump(stdout, stderr, func() ([]byte, error) { return scurry.DumpBlock(block) })
	}

	i := scurry.New(scurry.WithOutput(stdout), scurry.WithLogger(entry))
	if cfg.Prelude {
		if err := prelude.Load(i); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	result, err := i.EvalBlock(block)
	var ex *scurry.Exception
	if errors.As(err, &ex) {
		fmt.Fprintln(stdout, ex.Report())
		return 1
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	entry.WithFields(log.Fields{"result": result.String()}).Debug("finished")
	return 0
}

func dump(stdout, stderr io.Writer, render func() ([]byte, error)) int {
	b, err := render()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, string(b))
	return 0
}
