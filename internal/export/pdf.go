package export

import (
    "fmt"
    "io"
    "strings"

    "github.com/jung-kurt/gofpdf"
)

// WritePDF renders p as a simple A4 document: a heading, a summary line and
// one block per result with a clickable title.
func WritePDF(w io.Writer, p Page) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    // Core fonts are cp1252; translate UTF-8 input so accents survive.
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.SetTitle(tr("Results for "+p.Query), false)
    pdf.SetFont("Helvetica", "", 11)
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 14)
    pdf.MultiCell(0, 8, tr(fmt.Sprintf("Results for %q", p.Query)), "", "L", false)
    pdf.SetFont("Helvetica", "", 10)
    pdf.CellFormat(0, 6, fmt.Sprintf("Page %d, %d per page, %d of about %d results", p.Page, p.PerPage, len(p.Items), p.Total), "", 1, "L", false, 0, "")
    pdf.Ln(3)

    if len(p.Items) == 0 {
        pdf.SetFont("Helvetica", "I", 11)
        pdf.CellFormat(0, 6, "No results.", "", 1, "L", false, 0, "")
    }
    for i, r := range p.Items {
        title := strings.TrimSpace(r.Title)
        if title == "" { title = r.URL }
        if title == "" { title = "(untitled)" }

        pdf.SetFont("Helvetica", "B", 12)
        pdf.Write(6, fmt.Sprintf("%d. ", i+1))
        if r.URL != "" {
            pdf.SetTextColor(0, 0, 180)
            pdf.WriteLinkString(6, tr(title), r.URL)
            pdf.SetTextColor(0, 0, 0)
        } else {
            pdf.Write(6, tr(title))
        }
        pdf.Ln(6)

        if meta := strings.Trim(strings.Join([]string{r.Source, r.Date}, " | "), " |"); meta != "" {
            pdf.SetFont("Helvetica", "I", 9)
            pdf.CellFormat(0, 5, tr(meta), "", 1, "L", false, 0, "")
        }
        if r.URL != "" {
            pdf.SetFont("Helvetica", "", 8)
            pdf.SetTextColor(90, 90, 90)
            pdf.MultiCell(0, 4, r.URL, "", "L", false)
            pdf.SetTextColor(0, 0, 0)
        }
        if s := strings.TrimSpace(r.Snippet); s != "" {
            pdf.SetFont("Helvetica", "", 10)
            pdf.MultiCell(0, 5, tr(s), "", "L", false)
        }
        pdf.Ln(3)
    }

    if err := pdf.Error(); err != nil {
        return err
    }
    return pdf.Output(w)
}
