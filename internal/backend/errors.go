package backend

import "fmt"

// ExportKind selects one of the export endpoints.
type ExportKind int

const (
	ExportJSON ExportKind = iota
	ExportTXT
)

func (k ExportKind) String() string {
	if k == ExportTXT {
		return "txt"
	}
	return "json"
}

// Filename is the download name for the export.
func (k ExportKind) Filename() string {
	if k == ExportTXT {
		return "buying_guides.txt"
	}
	return "buying_guides.json"
}

// FailMessage is the user-facing text for a failed export.
func (k ExportKind) FailMessage() string {
	if k == ExportTXT {
		return "Export TXT failed"
	}
	return "Export failed"
}

// SuccessMessage is the user-facing text for a completed download.
func (k ExportKind) SuccessMessage() string {
	if k == ExportTXT {
		return "TXT downloaded successfully!"
	}
	return "JSON downloaded successfully!"
}

// UploadError reports a failed upload. Message is the server supplied
// error text, if any.
type UploadError struct {
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return "Upload failed: " + e.Err.Error()
	}
	return "Upload failed"
}

func (e *UploadError) Unwrap() error { return e.Err }

// ExportError reports a failed export download.
type ExportError struct {
	Kind   ExportKind
	Status int
	Err    error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.FailMessage(), e.Err)
	}
	return e.Kind.FailMessage()
}

func (e *ExportError) Unwrap() error { return e.Err }
