package inkcost

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const reportRule = "==================================================="

// WriteReport writes the human-readable estimate: one block per page, the
// location of the kept PDF, then the grand totals. Prices are whole units.
func WriteReport(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	for _, p := range r.Pages {
		if !p.OK() {
			fmt.Fprintf(bw, "Failed to analyze Page %d\n", p.Number)
			continue
		}
		b := p.Pricing
		fmt.Fprintf(bw, "--- PAGE %d OF %d ---\n", p.Number, r.TotalPages)
		fmt.Fprintf(bw, "Detected Type: %s\n", p.Analysis.DocumentType)
		fmt.Fprintf(bw, "Ink Coverage : %.2f%%\n", p.Analysis.CoveragePercentage)
		fmt.Fprintf(bw, "Assigned Tier: %s\n", b.TierName)
		fmt.Fprintf(bw, "  -> B&W   : Paper %d + Ink %d = %s\n", b.PaperPrice, b.BWInkPrice, money(currency, b.FinalBWPrice))
		fmt.Fprintf(bw, "  -> Color : Paper %d + Ink %d = %s\n\n", b.PaperPrice, b.ColorInkPrice, money(currency, b.FinalColorPrice))
	}

	if r.PDFPath != "" {
		fmt.Fprintf(bw, "NOTE: PDF file kept at: %s\n", r.PDFPath)
	}

	fmt.Fprintln(bw, reportRule)
	fmt.Fprintln(bw, centered("GRAND TOTAL ESTIMATE", len(reportRule)))
	fmt.Fprintln(bw, reportRule)
	fmt.Fprintf(bw, "Total Pages Processed: %d\n", r.Total.PagesProcessed)
	if skipped := r.Skipped(); skipped > 0 {
		fmt.Fprintf(bw, "Pages Skipped        : %d\n", skipped)
	}
	fmt.Fprintf(bw, "TOTAL IF PRINTED IN B&W   : %s\n", money(currency, r.Total.TotalBW))
	fmt.Fprintf(bw, "TOTAL IF PRINTED IN COLOR : %s\n", money(currency, r.Total.TotalColor))
	fmt.Fprintln(bw, reportRule)

	return bw.Flush()
}

// WriteReportJSON writes the report as indented JSON.
func WriteReportJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// money formats a whole-unit price with the currency label.
func money(currency string, amount int) string {
	return fmt.Sprintf("%s %d.00", currency, amount)
}

// centered pads s on the left so it sits in the middle of width columns.
func centered(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
