package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// clientDirectiveRe matches an explicit client-execution directive at the
// start of a line. Minified sources keep code on the same line, so the
// directive only needs to be the line's first statement.
var clientDirectiveRe = regexp.MustCompile(`^(?:'use client'|"use client")\s*(?:;|$)`)

// HasClientDirective reports whether the file's leading content carries a
// "use client" directive. Only blank lines and comments may precede it.
func HasClientDirective(content []byte) bool {
	inBlock := false
	sc := bufio.NewScanner(bytes.NewReader(content))
	// A minified file is a single line far past the default token limit.
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(content)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if inBlock {
			if i := strings.Index(line, "*/"); i >= 0 {
				line = strings.TrimSpace(line[i+2:])
				inBlock = false
			} else {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "/*") {
			if !strings.Contains(line, "*/") {
				inBlock = true
			}
			continue
		}
		return clientDirectiveRe.MatchString(line)
	}
	return false
}

// HasNullBridge reports whether page content both imports the island module
// and contains a conditional that renders nothing while checking the
// imported binding ("{Counter && null}" or "{Counter ? null : null}"). The
// combination deterministically diverges between server and client render
// trees; either half alone is harmless and never flagged.
func HasNullBridge(content []byte, islandFile, islandSuffix string) bool {
	base := islandFile
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	stem := islandStem(base, islandSuffix)
	if stem == "" {
		return false
	}

	module := regexp.QuoteMeta(stem + islandSuffix)
	importRe := regexp.MustCompile(
		`import\s+(?:([A-Za-z_$][\w$]*)|\{([^}]*)\}|\*\s+as\s+([A-Za-z_$][\w$]*))\s+from\s+['"][^'"]*` + module + `(?:\.[a-z]+)?['"]`)

	m := importRe.FindSubmatch(content)
	if m == nil {
		return false
	}

	var idents []string
	if len(m[1]) > 0 {
		idents = append(idents, string(m[1]))
	}
	if len(m[2]) > 0 {
		for _, part := range strings.Split(string(m[2]), ",") {
			name := strings.TrimSpace(part)
			// "Counter as C" binds C.
			if i := strings.LastIndex(name, " as "); i >= 0 {
				name = strings.TrimSpace(name[i+4:])
			}
			if name != "" {
				idents = append(idents, name)
			}
		}
	}
	if len(m[3]) > 0 {
		idents = append(idents, string(m[3]))
	}

	for _, ident := range idents {
		q := regexp.QuoteMeta(ident)
		bridgeRe := regexp.MustCompile(
			fmt.Sprintf(`\{\s*(?:typeof\s+)?%s(?:\s*!==?\s*['"]undefined['"])?\s*(?:&&\s*null|\?\s*null\s*:\s*null)\s*\}`, q))
		if bridgeRe.Match(content) {
			return true
		}
	}
	return false
}
