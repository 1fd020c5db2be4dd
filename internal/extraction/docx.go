package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
)

// extractDocx reads word/document.xml from the OOXML zip archive and joins
// paragraph text with newlines.
func extractDocx(data []byte) (string, error) {
	return zipXMLParagraphs(data, "word/document.xml", "docx", func(local string) paragraphRole {
		switch local {
		case "p":
			return roleParagraph
		case "t":
			return roleTextRun
		}
		return roleNone
	})
}

// extractODT reads content.xml from the OpenDocument zip archive. text:p and
// text:h elements both count as paragraphs.
func extractODT(data []byte) (string, error) {
	return zipXMLParagraphs(data, "content.xml", "odt", func(local string) paragraphRole {
		switch local {
		case "p", "h":
			return roleParagraph
		}
		return roleNone
	})
}

type paragraphRole int

const (
	roleNone paragraphRole = iota
	roleParagraph
	roleTextRun
)

// zipXMLParagraphs walks one XML document inside a zip archive and collects
// paragraph text. For OOXML, character data only counts inside text runs
// (w:t); for ODF it is collected directly under paragraph elements.
func zipXMLParagraphs(data []byte, entryName, format string, classify func(local string) paragraphRole) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReadError{Format: format, Message: "open archive", Cause: err}
	}

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == entryName {
			entry = f
			break
		}
	}
	if entry == nil {
		return "", &ReadError{Format: format, Message: entryName + " not found in archive"}
	}

	rc, err := entry.Open()
	if err != nil {
		return "", &ReadError{Format: format, Message: "open " + entryName, Cause: err}
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	needsRun := format == "docx"

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	runDepth := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch classify(t.Name.Local) {
			case roleParagraph:
				inParagraph = true
				current.Reset()
				runDepth = 0
			case roleTextRun:
				if inParagraph {
					runDepth++
				}
			}
		case xml.CharData:
			if inParagraph && (!needsRun || runDepth > 0) {
				current.Write(t)
			}
		case xml.EndElement:
			switch classify(t.Name.Local) {
			case roleParagraph:
				if inParagraph {
					inParagraph = false
					if text := strings.TrimSpace(current.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			case roleTextRun:
				if runDepth > 0 {
					runDepth--
				}
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
