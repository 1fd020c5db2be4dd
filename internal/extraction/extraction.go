// Package extraction pulls plain text and embedded hyperlinks out of
// uploaded resume documents (PDF, DOCX, ODT, TXT). It is the first stage of
// the intake pipeline and has no dependency on the parser or wizard.
package extraction

import (
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is the upload size limit, enforced before extraction.
	MaxFileSize = 5 << 20 // 5 MB

	// MinContentLength is the minimum extracted text length. Anything
	// shorter is treated as an empty extraction.
	MinContentLength = 50
)

// RawExtraction is the product of one extraction call: the document's plain
// text plus the embedded hyperlink targets, in document order. It is
// produced once per uploaded file and discarded after parsing.
type RawExtraction struct {
	Text  string
	Links []string
}

// Extract dispatches on the filename extension and returns the extracted
// text and hyperlinks. Hyperlinks are only harvested from PDFs, where URI
// annotations carry targets invisible in the rendered text.
func Extract(data []byte, filename string) (*RawExtraction, error) {
	if int64(len(data)) > MaxFileSize {
		return nil, &TooLargeError{Size: int64(len(data)), Max: MaxFileSize}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	var (
		text  string
		links []string
		err   error
	)
	switch ext {
	case "pdf":
		text, links, err = extractPDF(data)
	case "docx":
		text, err = extractDocx(data)
	case "doc":
		// Modern mislabelled .doc uploads are usually OOXML; route them
		// through the same zip reader. A genuine legacy binary surfaces as
		// an empty extraction (soft failure) rather than a read error.
		if text, err = extractDocx(data); err != nil {
			text, err = "", nil
		}
	case "odt":
		text, err = extractODT(data)
	case "txt":
		text = extractText(data)
	default:
		return nil, &UnsupportedFormatError{Extension: ext}
	}
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinContentLength {
		return nil, &EmptyExtractionError{Length: len(trimmed)}
	}
	if links == nil {
		links = []string{}
	}

	return &RawExtraction{Text: trimmed, Links: links}, nil
}

// SupportedExtensions returns the accepted upload extensions.
func SupportedExtensions() []string {
	return []string{"pdf", "docx", "doc", "txt", "odt"}
}
