package tableio

// Format identifies a tabular file format. Its String form is the primary
// extension, which also names the per-format metrics.
type Format int

// Supported formats, in declaration order.
const (
	FormatCSV Format = iota + 1
	FormatJSON
	FormatNDJSON
	FormatHDVBinary
	FormatHDVText
)

var formatInfo = map[Format]struct {
	name       string
	extensions []string
	writable   bool
}{
	FormatCSV:       {"csv", []string{"csv"}, true},
	FormatJSON:      {"json", []string{"json"}, true},
	FormatNDJSON:    {"ndjson", []string{"ndjson", "jsonl"}, false},
	FormatHDVBinary: {"hdvb", []string{"hdvb"}, true},
	FormatHDVText:   {"hdvt", []string{"hdvt"}, true},
}

// ParseFormat maps an extension to its format. Matching is case-sensitive.
func ParseFormat(ext string) (Format, bool) {
	switch ext {
	case "csv":
		return FormatCSV, true
	case "json":
		return FormatJSON, true
	case "ndjson", "jsonl":
		return FormatNDJSON, true
	case "hdvb":
		return FormatHDVBinary, true
	case "hdvt":
		return FormatHDVText, true
	}
	return 0, false
}

// Formats returns all formats in declaration order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatNDJSON, FormatHDVBinary, FormatHDVText}
}

func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return "unknown"
}

// Extensions returns the file extensions that map to f.
func (f Format) Extensions() []string {
	exts := formatInfo[f].extensions
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Readable reports whether files of this format can be read.
func (f Format) Readable() bool {
	_, ok := formatInfo[f]
	return ok
}

// Writable reports whether files of this format can be written.
// NDJSON is read-only.
func (f Format) Writable() bool {
	return formatInfo[f].writable
}
