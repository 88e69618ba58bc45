package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSource is the argument that selects standard input.
const StdinSource = "-"

// Item is one payload read from an input source.
type Item struct {
	Source  string // file path, or "-" for stdin
	Line    int    // 1-based line number within Source
	Payload string
}

// discoverItems reads every payload line from the given sources. Blank lines
// and lines starting with '#' are skipped.
func discoverItems(args []string, stdin io.Reader) ([]Item, error) {
	var items []Item
	for _, arg := range args {
		found, err := readSource(arg, stdin)
		if err != nil {
			return nil, err
		}
		items = append(items, found...)
	}
	return items, nil
}

func readSource(src string, stdin io.Reader) ([]Item, error) {
	if src == StdinSource {
		if stdin == nil {
			stdin = os.Stdin
		}
		return readItems(src, stdin)
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", src, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", src)
	}

	f, err := os.Open(src) //nolint:gosec // G304: path comes from CLI arguments
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer func() { _ = f.Close() }()
	return readItems(src, f)
}

func readItems(src string, r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, Item{Source: src, Line: n, Payload: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return items, nil
}
