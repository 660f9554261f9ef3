package domain

import "strings"

// FileType is a supported source file extension, including the dot.
type FileType string

// Supported file types.
const (
	FileTypePDF  FileType = ".pdf"
	FileTypeDOCX FileType = ".docx"
	FileTypeTXT  FileType = ".txt"
	FileTypeCSV  FileType = ".csv"
)

// FileTypeFromExtension normalises ext and returns the matching file type.
// Extensions are accepted with or without the leading dot, in any case.
func FileTypeFromExtension(ext string) (FileType, error) {
	e := strings.ToLower(strings.TrimSpace(ext))
	if e != "" && !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	ft := FileType(e)
	if !ft.IsValid() {
		return "", &UnsupportedFormatError{Extension: ext}
	}
	return ft, nil
}

// IsValid returns true if the file type is supported.
func (f FileType) IsValid() bool {
	switch f {
	case FileTypePDF, FileTypeDOCX, FileTypeTXT, FileTypeCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f FileType) String() string {
	return string(f)
}

// Description returns how files of this type are loaded and chunked.
func (f FileType) Description() string {
	switch f {
	case FileTypePDF:
		return "One document per page, then chunked by the strategy the filename selects"
	case FileTypeDOCX:
		return "One document per paragraph group, indexed as loaded"
	case FileTypeTXT:
		return "Whole file as one document, split into overlapping windows"
	case FileTypeCSV:
		return "One document per row, serialised as a JSON object"
	default:
		return unknownDescription
	}
}

// AllFileTypes returns every supported file type.
func AllFileTypes() []FileType {
	return []FileType{FileTypePDF, FileTypeDOCX, FileTypeTXT, FileTypeCSV}
}
