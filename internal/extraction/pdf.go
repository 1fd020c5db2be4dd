package extraction

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// extractPDF extracts page-by-page text plus URI link-annotation targets.
// Link annotations capture href targets that are invisible in the rendered
// text, e.g. "LinkedIn" anchor text pointing at a profile URL.
//
// If pdfcpu cannot read the document, it degrades to a best-effort literal
// scan with an empty link list instead of failing the pipeline.
func extractPDF(data []byte) (string, []string, error) {
	ctx, cleanup, err := readPDFContext(data)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return scanLiteralText(data), []string{}, nil
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		stream, err := io.ReadAll(r)
		if err != nil || len(stream) == 0 {
			continue
		}
		if text := decodeContentStream(stream); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n"), linkAnnotations(ctx), nil
}

// readPDFContext writes the upload to a scoped temp file and reads it with
// pdfcpu. The temp file is removed on every exit path via the returned
// cleanup func.
func readPDFContext(data []byte) (*model.Context, func(), error) {
	tmp, err := os.CreateTemp("", "resume-upload-*.pdf")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	if _, err := tmp.Write(data); err != nil {
		return nil, cleanup, err
	}
	if err := tmp.Close(); err != nil {
		return nil, cleanup, err
	}

	ctx, err := api.ReadContextFile(tmp.Name())
	if err != nil {
		return nil, cleanup, err
	}
	return ctx, cleanup, nil
}

// linkAnnotations walks the xref table and collects URI-type link annotation
// targets in object order, deduplicated, first occurrence wins. Text that
// merely looks like a URL is deliberately not collected here.
func linkAnnotations(ctx *model.Context) []string {
	links := []string{}
	seen := map[string]bool{}

	objNrs := make([]int, 0, len(ctx.Table))
	for nr := range ctx.Table {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	for _, nr := range objNrs {
		entry := ctx.Table[nr]
		if entry == nil || entry.Free {
			continue
		}
		d, ok := entry.Object.(types.Dict)
		if !ok {
			continue
		}
		subtype := d.NameEntry("Subtype")
		if subtype == nil || *subtype != "Link" {
			continue
		}
		actionObj, found := d.Find("A")
		if !found {
			continue
		}
		action, err := ctx.DereferenceDict(actionObj)
		if err != nil || action == nil {
			continue
		}
		uriObj, found := action.Find("URI")
		if !found {
			continue
		}
		resolved, err := ctx.Dereference(uriObj)
		if err != nil {
			continue
		}
		var uri string
		switch s := resolved.(type) {
		case types.StringLiteral:
			uri = s.Value()
		case types.HexLiteral:
			uri = s.Value()
		}
		uri = strings.TrimSpace(uri)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		links = append(links, uri)
	}
	return links
}

// pdfLiteralRe matches PDF string literals: (text here)
var pdfLiteralRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// decodeContentStream pulls text out of PDF content stream operators.
// Tj, TJ and ' carry string literals; Td/TD/T* are treated as line breaks
// so resume lines survive into the extracted text.
func decodeContentStream(stream []byte) string {
	var sb strings.Builder

	for _, raw := range bytes.Split(stream, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}

		showsText := bytes.HasSuffix(line, []byte("Tj")) ||
			bytes.HasSuffix(line, []byte("TJ")) ||
			(bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")))
		if showsText {
			for _, m := range pdfLiteralRe.FindAllSubmatch(line, -1) {
				if text := unescapePDFLiteral(m[1]); text != "" {
					sb.WriteString(text)
				}
			}
		}

		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) || bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return tidyText(sb.String())
}

// unescapePDFLiteral resolves backslash escapes, including octal sequences
// like \050 for parentheses.
func unescapePDFLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// tidyText collapses runs of spaces and blank lines while keeping line
// structure, and drops non-printable runes.
func tidyText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		var sb strings.Builder
		prevSpace := false
		for _, r := range line {
			switch {
			case unicode.IsSpace(r):
				if !prevSpace && sb.Len() > 0 {
					sb.WriteByte(' ')
					prevSpace = true
				}
			case unicode.IsPrint(r):
				sb.WriteRune(r)
				prevSpace = false
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// scanLiteralText is the degraded path when pdfcpu cannot read the file:
// harvest parenthesized string literals straight from the raw bytes. Only
// uncompressed content streams yield anything useful, which is acceptable
// for a best-effort fallback.
func scanLiteralText(data []byte) string {
	var sb strings.Builder
	for _, m := range pdfLiteralRe.FindAllSubmatch(data, -1) {
		text := tidyText(unescapePDFLiteral(m[1]))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String()
}
