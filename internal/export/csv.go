package export

import (
	"strconv"
	"strings"

	"github.com/xavierca1/leadlocal/internal/entity"
)

const leadSource = "LeadLocal"

var csvHeader = []string{
	"Business Name",
	"Industry",
	"Address",
	"Phone",
	"Website",
	"Employee Count",
	"AI Readiness Score",
	"Top AI Opportunity",
	"Recommended Approach",
	"Contact Strategy",
}

var crmHeader = []string{
	"Company name",
	"Company domain name",
	"Phone number",
	"Address",
	"Industry",
	"Number of employees",
	"AI Readiness Score",
	"Lead Source",
	"Notes",
}

// ToCSV writes a header plus one row per lead. Rows are separated by "\n"
// without a trailing newline and every field is double-quoted.
func ToCSV(leads []entity.Lead) ([]byte, error) {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			l.Name,
			l.Industry,
			l.Address,
			l.Phone,
			l.Website,
			optionalInt(l.EmployeeCount),
			strconv.Itoa(l.ReadinessScore),
			l.TopOpportunity(),
			l.TopRecommendedSolution(),
			l.TopTalkingPoint(),
		})
	}
	return writeQuoted(csvHeader, rows), nil
}

// ToCRMFormat maps leads onto the HubSpot company import columns.
func ToCRMFormat(leads []entity.Lead) ([]byte, error) {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			l.Name,
			StripProtocol(l.Website),
			l.Phone,
			l.Address,
			l.Industry,
			optionalInt(l.EmployeeCount),
			strconv.Itoa(l.ReadinessScore),
			leadSource,
			strings.Join(l.Opportunities, "; "),
		})
	}
	return writeQuoted(crmHeader, rows), nil
}

// StripProtocol removes a leading http:// or https:// scheme.
func StripProtocol(website string) string {
	w := strings.TrimSpace(website)
	lower := strings.ToLower(w)
	for _, p := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, p) {
			return w[len(p):]
		}
	}
	return w
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func writeQuoted(header []string, rows [][]string) []byte {
	var b strings.Builder
	writeRow(&b, header)
	for _, r := range rows {
		b.WriteByte('\n')
		writeRow(&b, r)
	}
	return []byte(b.String())
}

// Line breaks inside a field are flattened so every lead stays on one line.
var fieldEscaper = strings.NewReplacer(`"`, `""`, "\r\n", " ", "\n", " ", "\r", " ")

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(fieldEscaper.Replace(f))
		b.WriteByte('"')
	}
}
