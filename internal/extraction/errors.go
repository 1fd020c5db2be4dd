package extraction

import "fmt"

// UnsupportedFormatError indicates the uploaded file extension is not one of
// the accepted resume formats. Recoverable by asking the user to re-upload.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q (accepted: pdf, docx, doc, txt, odt)", e.Extension)
}

// EmptyExtractionError indicates extraction produced less text than the
// minimum-content threshold. Callers must treat this as a soft failure, not
// a crash.
type EmptyExtractionError struct {
	Length int
}

func (e *EmptyExtractionError) Error() string {
	return fmt.Sprintf("extracted text too short: %d characters (minimum %d)", e.Length, MinContentLength)
}

// TooLargeError indicates the upload exceeds the maximum accepted size.
// Rejected before extraction begins.
type TooLargeError struct {
	Size int64
	Max  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes (max %d)", e.Size, e.Max)
}

// ReadError wraps a format reader failure.
type ReadError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s read error: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s read error: %s", e.Format, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
