// Package assets embeds the default word lists so the engine runs without any
// configured files.
package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
)

const (
	answersFile = "answers.txt"
	allowedFile = "allowed.txt"
)

//go:embed allowed.txt answers.txt
var lists embed.FS

// ParseList reads one entry per line. Blank lines and lines starting with '#'
// are skipped; entries are trimmed but otherwise returned as written.
func ParseList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s, ok := entry(sc.Text()); ok {
			out = append(out, s)
		}
	}
	return out, sc.Err()
}

func entry(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" || s[0] == '#' {
		return "", false
	}
	return s, true
}

func embedded(name string) ([]string, error) {
	f, err := lists.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ParseList(f)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", name, err)
	}
	return out, nil
}

// AnswersList returns the embedded final set.
func AnswersList() ([]string, error) { return embedded(answersFile) }

// AllowedList returns the embedded acceptable set.
func AllowedList() ([]string, error) { return embedded(allowedFile) }
