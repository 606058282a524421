package blob

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/logger"
)

// GlobalName is the page global that holds the form definition.
const GlobalName = "FB_PUBLIC_LOAD_DATA_"

// FindEmbeddedData returns the literal assigned to the form data global
// in an HTML page. Script elements are searched first; if the page does
// not tokenize into a matching script, the raw bytes are scanned.
func FindEmbeddedData(page []byte) ([]byte, error) {
	for _, script := range scriptTexts(page) {
		if lit, ok := extractAssignment(script); ok {
			return lit, nil
		}
	}

	if lit, ok := extractAssignment(page); ok {
		logger.Debug("Form data found outside script elements")
		return lit, nil
	}

	return nil, fmt.Errorf("%w: %s not present in page", domain.ErrMissingInput, GlobalName)
}

// scriptTexts collects the text of every <script> element.
func scriptTexts(page []byte) [][]byte {
	var scripts [][]byte
	z := html.NewTokenizer(bytes.NewReader(page))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return scripts
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				scripts = append(scripts, bytes.Clone(z.Text()))
			}
		}
	}
}

// extractAssignment finds "FB_PUBLIC_LOAD_DATA_ = <literal>" and cuts
// the balanced literal.
func extractAssignment(src []byte) ([]byte, bool) {
	rest := src
	for {
		i := bytes.Index(rest, []byte(GlobalName))
		if i < 0 {
			return nil, false
		}
		rest = rest[i+len(GlobalName):]

		j := skipSpace(rest, 0)
		if j >= len(rest) || rest[j] != '=' {
			continue
		}
		j = skipSpace(rest, j+1)
		if lit, ok := balancedLiteral(rest[j:]); ok {
			return lit, true
		}
	}
}

func skipSpace(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return i
}

// balancedLiteral returns the prefix of b that forms one complete
// bracketed literal, honouring string quoting and escapes.
func balancedLiteral(b []byte) ([]byte, bool) {
	if len(b) == 0 || (b[0] != '[' && b[0] != '{') {
		return nil, false
	}

	var (
		stack   []byte
		inStr   bool
		quote   byte
		escaped bool
	)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				inStr = false
			}
			continue
		}

		switch c {
		case '"', '\'':
			inStr, quote = true, c
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return nil, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return b[:i+1], true
			}
		}
	}
	return nil, false
}
