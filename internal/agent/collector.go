package agent

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cryptoinsight/internal/fetcher"
)

const assetPrompt = "Enter the name of a cryptocurrency (e.g., Bitcoin): "

// Collector reads one asset name from the user.
// It takes an injected reader/writer pair so the pipeline can be tested
// without real console I/O.
type Collector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewCollector creates a collector reading from in and prompting on out
func NewCollector(in *bufio.Reader, out io.Writer) *Collector {
	return &Collector{in: in, out: out}
}

// Collect prompts for and reads a single line, trimmed of whitespace.
// Empty input after trimming fails with an empty-input error; no network
// call is made in that case.
func (c *Collector) Collect() (string, error) {
	fmt.Fprint(c.out, assetPrompt)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	name := strings.TrimSpace(line)
	if name == "" {
		return "", fetcher.NewEmptyInputError()
	}

	return name, nil
}
