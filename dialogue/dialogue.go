package dialogue

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ShowFileSelection lists files and lets the user pick some of them by number.
// Pressing Enter selects every file.
func ShowFileSelection(files []string, in io.Reader, out io.Writer) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "\nAvailable BMP files:")
	for i, file := range files {
		fmt.Fprintf(out, "%d. %s\n", i+1, file)
	}

	fmt.Fprint(out, "\nSelect file(s) to inspect (e.g., 1,3,4), or press Enter for all: ")
	input, err := reader.ReadString('\n')
	// EOF without a newline still carries whatever was typed
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return files, nil
	}

	var selected []string
	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		trimmedPart := strings.TrimSpace(part)
		if trimmedPart == "" {
			continue
		}
		idx, err := strconv.Atoi(trimmedPart)
		if err != nil || idx < 1 || idx > len(files) {
			return nil, fmt.Errorf("invalid selection '%s': please enter numbers between 1 and %d, separated by commas", trimmedPart, len(files))
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, files[idx-1])
	}
	return selected, nil
}
