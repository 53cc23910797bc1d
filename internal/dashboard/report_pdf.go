package dashboard

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Wikid82/snare/internal/version"
)

// reportFont is a UTF-8 TrueType family. The core PDF fonts only cover
// cp1252, and campaign and source names are free text.
const reportFont = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

const (
	labelWidth = 140.0
	countWidth = 40.0
	ellipsis   = "…"
)

type pdfRow struct {
	label string
	count int
}

func newReportPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(reportFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(reportFont, "B", fontBold)
	return pdf
}

// RenderPDF writes r as a one-page A4 report.
func RenderPDF(r Report, generatedAt time.Time, w io.Writer) error {
	pdf := newReportPDF()
	pdf.SetTitle(version.Name+" dashboard", true)
	pdf.SetCreator(version.UserAgent(), true)
	pdf.AddPage()

	pdf.SetFont(reportFont, "B", 20)
	pdf.SetTextColor(15, 98, 254)
	pdf.Cell(0, 10, "Honeypot Campaign Dashboard")
	pdf.Ln(10)

	pdf.SetFont(reportFont, "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	byType := make([]pdfRow, len(r.HitsByType))
	for i, e := range r.HitsByType {
		byType[i] = pdfRow{e.Type, e.Count}
	}
	ips := make([]pdfRow, len(r.TopIPs))
	for i, e := range r.TopIPs {
		ips[i] = pdfRow{e.IPAddress, e.Count}
	}
	sources := make([]pdfRow, len(r.TopSources))
	for i, e := range r.TopSources {
		sources[i] = pdfRow{e.SourceName, e.Count}
	}
	campaigns := make([]pdfRow, len(r.TopCampaigns))
	for i, e := range r.TopCampaigns {
		campaigns[i] = pdfRow{e.CampaignName, e.Count}
	}

	pdfSection(pdf, "Hits by type", "Type", "Hits", byType)
	pdfSection(pdf, "Top 5 IP addresses", "IP address", "Hits", ips)
	pdfSection(pdf, "Top 5 sources", "Source", "Hits", sources)
	pdfSection(pdf, "Top 5 campaigns", "Campaign", "Honeypots", campaigns)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render dashboard pdf: %w", err)
	}
	return nil
}

func pdfSection(pdf *fpdf.Fpdf, title, keyHeader, countHeader string, rows []pdfRow) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(reportFont, "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(9)

	pdf.SetFont(reportFont, "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(labelWidth, 7, keyHeader, "1", 0, "", true, 0, "")
	pdf.CellFormat(countWidth, 7, countHeader, "1", 1, "R", true, 0, "")

	pdf.SetFont(reportFont, "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(labelWidth+countWidth, 7, "no data", "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		pdf.CellFormat(labelWidth, 7, fitCell(pdf, row.label, labelWidth), "1", 0, "", false, 0, "")
		pdf.CellFormat(countWidth, 7, fmt.Sprint(row.count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

// fitCell shortens s with an ellipsis until it fits a cell of width w in the
// current font.
func fitCell(pdf *fpdf.Fpdf, s string, w float64) string {
	room := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= room {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+ellipsis) > room {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
