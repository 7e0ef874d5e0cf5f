// Package export serializes lead lists into downloadable files.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var (
	ErrExportFailed      = errors.New("export failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
	FormatCRM Format = "crm"
)

// ParseFormat accepts the format names used by the dashboard.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	case "crm", "hubspot":
		return FormatCRM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Exporter struct {
	now func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export renders leads in the given format. On failure no bytes are
// returned and the error wraps ErrExportFailed.
func (e *Exporter) Export(format Format, leads []entity.Lead) (file *File, err error) {
	defer func() {
		if r := recover(); r != nil {
			file, err = nil, fmt.Errorf("%w: %v", ErrExportFailed, r)
		}
	}()

	var (
		data []byte
		name string
		ct   string
	)
	switch format {
	case FormatCSV:
		data, err = ToCSV(leads)
		name, ct = "leadlocal-prospects.csv", "text/csv; charset=utf-8"
	case FormatPDF:
		data, err = e.ToPDF(leads)
		name, ct = "leadlocal-report.pdf", "application/pdf"
	case FormatCRM:
		data, err = ToCRMFormat(leads)
		name, ct = "leadlocal-hubspot-import.csv", "text/csv; charset=utf-8"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		if errors.Is(err, ErrExportFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return &File{Name: name, ContentType: ct, Data: data}, nil
}
