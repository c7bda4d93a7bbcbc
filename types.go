package inkcost

import "encoding/json"

// DocumentType classifies a page by the inks it needs.
type DocumentType int

// Document types.
const (
	BlackAndWhite DocumentType = iota
	Color
)

// String returns the report label for the document type.
func (t DocumentType) String() string {
	if t == Color {
		return "Color"
	}
	return "B&W"
}

// MarshalJSON encodes the document type as its report label.
func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// AnalysisResult is the outcome of analyzing one page.
type AnalysisResult struct {
	DocumentType       DocumentType `json:"documentType"`
	CoveragePercentage float64      `json:"coveragePercentage"` // 0-100
}

// PricingBreakdown holds the prices derived from a coverage percentage.
// FinalBWPrice is PaperPrice+BWInkPrice; FinalColorPrice is
// PaperPrice+ColorInkPrice.
type PricingBreakdown struct {
	TierName        string `json:"tierName"`
	PaperPrice      int    `json:"paperPrice"`
	BWInkPrice      int    `json:"bwInkPrice"`
	ColorInkPrice   int    `json:"colorInkPrice"`
	FinalBWPrice    int    `json:"finalBwPrice"`
	FinalColorPrice int    `json:"finalColorPrice"`
}

// GrandTotal accumulates prices over the successfully analyzed pages of one
// document run.
type GrandTotal struct {
	TotalBW        int `json:"totalBw"`
	TotalColor     int `json:"totalColor"`
	PagesProcessed int `json:"pagesProcessed"`
}

// Add counts one priced page.
func (g *GrandTotal) Add(b PricingBreakdown) {
	g.TotalBW += b.FinalBWPrice
	g.TotalColor += b.FinalColorPrice
	g.PagesProcessed++
}

// PageResult is the per-page outcome. Err is set when the page was skipped,
// in which case Analysis and Pricing are zero values.
type PageResult struct {
	Number   int              `json:"page"` // 1-based
	Analysis AnalysisResult   `json:"analysis"`
	Pricing  PricingBreakdown `json:"pricing"`
	Err      error            `json:"-"`
}

// OK reports whether the page was analyzed and priced.
func (p PageResult) OK() bool {
	return p.Err == nil
}

// MarshalJSON adds the error text for skipped pages.
func (p PageResult) MarshalJSON() ([]byte, error) {
	type page PageResult
	out := struct {
		page
		Error string `json:"error,omitempty"`
	}{page: page(p)}
	if p.Err != nil {
		out.Error = p.Err.Error()
	}
	return json.Marshal(out)
}

// Report is the result of estimating one document.
type Report struct {
	Source     string       `json:"source"`
	PDFPath    string       `json:"pdfPath,omitempty"`
	TotalPages int          `json:"totalPages"`
	Pages      []PageResult `json:"pages"`
	Total      GrandTotal   `json:"total"`
	Currency   string       `json:"currency"`
}

// Skipped returns the number of pages that failed analysis.
func (r *Report) Skipped() int {
	n := 0
	for _, p := range r.Pages {
		if !p.OK() {
			n++
		}
	}
	return n
}
