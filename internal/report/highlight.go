package report

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightLine renders one source line with ANSI syntax highlighting based
// on the file name. On any failure the line is returned unchanged.
func HighlightLine(path, line string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return line
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	it, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return line
	}
	return strings.TrimRight(buf.String(), "\n")
}
