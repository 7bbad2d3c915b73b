package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errNoInput is returned when stdin closes before a valid answer is read.
var errNoInput = errors.New("no input available")

// prompter asks for numbers on an interactive stream.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// askInt keeps asking until it reads an integer >= min.
func (p *prompter) askInt(question string, minValue int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s ", question)

		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer != "" {
			n, convErr := strconv.Atoi(answer)
			if convErr == nil && n >= minValue {
				return n, nil
			}
			fmt.Fprintf(p.out, "Please enter a whole number of at least %d.\n", minValue)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("%w: %s", errNoInput, question)
			}
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
	}
}
