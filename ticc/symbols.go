package ticc

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const codeSection = ".text"

// DefaultTopSymbols is the number of rows in the detailed ranking.
const DefaultTopSymbols = 10

// Symbol is a code symbol and its contribution to the .text section.
type Symbol struct {
	Size int64
	Name string
}

var (
	parenGroupRe  = regexp.MustCompile(`\(([^)]*)\)`)
	bareSectionRe = regexp.MustCompile(`^\.[a-z]+$`)
)

// ScanSymbols collects the member rows listed under the .text output
// section header. A row must start with two hexadecimal fields, the
// member address and size. Rows come back in input order; rank them
// with TopSymbols.
func ScanSymbols(r io.Reader) ([]Symbol, error) {
	var syms []Symbol
	state := stateOutside
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if state == stateCodeSection && !isIndented(line) {
			// A row in the first column opens a new output section.
			state = stateOutside
		}
		switch state {
		case stateOutside:
			if strings.HasPrefix(line, codeSection) {
				state = stateCodeSection
			}
		case stateCodeSection:
			if s, ok := parseSymbolRow(line); ok {
				syms = append(syms, s)
			}
		}
	}
	return syms, sc.Err()
}

func isIndented(line string) bool {
	return line[0] == ' ' || line[0] == '\t'
}

func parseSymbolRow(line string) (Symbol, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Symbol{}, false
	}
	if _, err := strconv.ParseInt(fields[0], 16, 64); err != nil {
		return Symbol{}, false
	}
	size, err := strconv.ParseInt(fields[1], 16, 64)
	if err != nil || size <= 0 {
		return Symbol{}, false
	}
	name := resolveSymbol(line, fields)
	if name == "" || bareSectionRe.MatchString(name) {
		return Symbol{}, false
	}
	return Symbol{Size: size, Name: name}, true
}

// resolveSymbol picks the best symbol reference on a member row: a
// parenthesized ".text.sym" or ".text:sym" member name, then the
// content of any parenthesized group, then the last token on the row.
func resolveSymbol(line string, fields []string) string {
	groups := parenGroupRe.FindAllStringSubmatch(line, -1)
	for _, g := range groups {
		rest, ok := strings.CutPrefix(g[1], codeSection)
		if !ok || rest == "" {
			continue
		}
		if rest[0] == '.' || rest[0] == ':' {
			return rest[1:]
		}
	}
	if len(groups) > 0 {
		return groups[0][1]
	}
	return fields[len(fields)-1]
}

// TopSymbols returns the n largest symbols, stable on equal sizes.
func TopSymbols(syms []Symbol, n int) []Symbol {
	out := make([]Symbol, len(syms))
	copy(out, syms)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
