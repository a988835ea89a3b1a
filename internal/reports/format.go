package reports

import "fmt"

// Format is the file type of an exported artifact.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatPDF, FormatHTML, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Render turns a built report into the bytes of an artifact of format f.
func Render(r *Report, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatCSV:
		text, err := EncodeCSV(r)
		return []byte(text), err
	case FormatHTML:
		text, err := EncodeHTML(r, opts)
		return []byte(text), err
	case FormatPDF:
		return RenderPDF(r, opts)
	case FormatXLSX:
		return RenderXLSX(r)
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}
