// PDF report renderer built on gofpdf: a cover page, the preparation journey,
// one section per round with a problem-links table, and a bar chart of the
// coding topic distribution.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/interviewdigest/core/report"
)

var (
	accent = [3]int{0, 64, 133}
	grey   = [3]int{110, 110, 110}
)

// PDFRenderer lays out a report on A4 pages.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// RenderReport converts a report into PDF bytes.
func (r *PDFRenderer) RenderReport(rep *report.Report) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("nil report")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	// Core fonts are cp1252; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(asciiPunct(s)) }

	generated := rep.GeneratedAt.Format("2006-01-02")
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		setText(pdf, grey)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d | Generated: %s", pdf.PageNo(), generated), "", 0, "C", false, 0, "")
	})

	coverPage(pdf, rep, text)

	pdf.AddPage()
	sectionTitle(pdf, "Preparation Journey")
	journey := rep.Journey
	if journey.Summary == "" && len(journey.Mistakes) == 0 && len(journey.Tips) == 0 {
		paragraph(pdf, "No journey summary available.", text)
	}
	if journey.Summary != "" {
		paragraph(pdf, journey.Summary, text)
	}
	bulletList(pdf, "Mistakes to Avoid:", journey.Mistakes, text)
	bulletList(pdf, "Key Tips:", journey.Tips, text)
	rule(pdf)

	for _, round := range rep.Rounds {
		sectionTitle(pdf, fmt.Sprintf("Round %d Overview", round.Number))
		pdf.SetFont("Helvetica", "I", 9)
		setText(pdf, grey)
		pdf.MultiCell(0, 5, fmt.Sprintf("Reported by %d of %d interviews", round.Samples, rep.Interviews), "", "L", false)
		pdf.Ln(2)
		if round.Overview != "" {
			paragraph(pdf, round.Overview, text)
		}
		bulletList(pdf, "Coding Questions by Topic:", round.Questions, text)
		linksTable(pdf, round.Links, text)
		rule(pdf)
	}

	topicChart(pdf, rep, text)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func coverPage(pdf *gofpdf.Fpdf, rep *report.Report, text func(string) string) {
	pdf.AddPage()
	pdf.SetY(80)
	pdf.SetFont("Helvetica", "B", 28)
	setText(pdf, accent)
	pdf.CellFormat(0, 14, "Interview Insights Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	subject := strings.TrimSpace(strings.Trim(fmt.Sprintf("%s - %s", rep.Company, rep.Role), " -"))
	if subject == "" {
		subject = "All interviews"
	}
	pdf.SetFont("Helvetica", "", 16)
	setText(pdf, [3]int{0, 0, 0})
	pdf.CellFormat(0, 10, text("Analysis for "+subject), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Based on %d interview experiences", rep.Interviews), "", 1, "C", false, 0, "")

	pdf.SetY(-60)
	setText(pdf, grey)
	pdf.CellFormat(0, 8, "Report Generated on: "+rep.GeneratedAt.Format("January 02, 2006"), "", 1, "C", false, 0, "")
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 16)
	setText(pdf, accent)
	pdf.MultiCell(0, 9, title, "", "L", false)
	pdf.Ln(2)
}

func paragraph(pdf *gofpdf.Fpdf, s string, text func(string) string) {
	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, [3]int{0, 0, 0})
	pdf.MultiCell(0, 6, text(s), "", "L", false)
	pdf.Ln(3)
}

func bulletList(pdf *gofpdf.Fpdf, heading string, items []string, text func(string) string) {
	if len(items) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	setText(pdf, [3]int{0, 0, 0})
	pdf.MultiCell(0, 7, heading, "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	left, _, _, _ := pdf.GetMargins()
	for _, item := range items {
		item = strings.TrimSpace(strings.TrimLeft(item, "•*- "))
		if item == "" {
			continue
		}
		pdf.SetX(left + 5)
		pdf.MultiCell(0, 5, "- "+text(item), "", "L", false)
	}
	pdf.Ln(2)
}

func linksTable(pdf *gofpdf.Fpdf, links []string, text func(string) string) {
	if len(links) == 0 {
		return
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	setText(pdf, [3]int{0, 0, 0})
	pdf.MultiCell(0, 7, "Problem Links:", "", "L", false)

	pdf.SetFillColor(211, 211, 211)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, "Link to Online Problem", "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 255)
	for _, link := range links {
		pdf.CellFormat(0, 6, truncateText(text(link), 95), "1", 1, "L", false, 0, link)
	}
	setText(pdf, [3]int{0, 0, 0})
}

// topicChart draws a horizontal bar per topic, scaled to the largest count.
func topicChart(pdf *gofpdf.Fpdf, rep *report.Report, text func(string) string) {
	pdf.AddPage()
	sectionTitle(pdf, "Coding Topic Distribution")
	if len(rep.Topics) == 0 {
		paragraph(pdf, "No relevant coding topics found.", text)
		return
	}

	const (
		labelWidth = 40.0
		barHeight  = 7.0
		maxBar     = 110.0
	)
	left, _, _, _ := pdf.GetMargins()
	top := rep.Topics[0].Count
	for i, tc := range rep.Topics {
		y := pdf.GetY()
		pdf.SetFont("Helvetica", "", 10)
		setText(pdf, [3]int{0, 0, 0})
		pdf.SetXY(left, y)
		pdf.CellFormat(labelWidth, barHeight, text(tc.Topic), "", 0, "R", false, 0, "")

		width := maxBar * float64(tc.Count) / float64(top)
		shade := 60 + (i*25)%140
		pdf.SetFillColor(accent[0], accent[1]+shade/2, accent[2]+shade/3)
		pdf.Rect(left+labelWidth+3, y+1, width, barHeight-2, "F")

		pdf.SetXY(left+labelWidth+5+width, y)
		pdf.CellFormat(15, barHeight, fmt.Sprintf("%d", tc.Count), "", 1, "L", false, 0, "")
		pdf.Ln(1.5)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	setText(pdf, grey)
	pdf.MultiCell(0, 5, fmt.Sprintf("Number of interviews (of %d) whose rounds mention each topic.", rep.Interviews), "", "L", false)
}

func rule(pdf *gofpdf.Fpdf) {
	left, _, right, _ := pdf.GetMargins()
	w, _ := pdf.GetPageSize()
	y := pdf.GetY() + 3
	pdf.SetDrawColor(211, 211, 211)
	pdf.Line(left, y, w-right, y)
	pdf.SetY(y + 4)
}

func setText(pdf *gofpdf.Fpdf, c [3]int) {
	pdf.SetTextColor(c[0], c[1], c[2])
}

// asciiPunct replaces typographic punctuation that cp1252 core fonts render
// poorly and drops characters outside it, such as emoji.
func asciiPunct(s string) string {
	s = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`, "–", "-", "—", "-", "•", "-").Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return -1
		}
		return r
	}, s)
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
