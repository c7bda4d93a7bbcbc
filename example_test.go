package inkcost_test

import (
	"fmt"
	"os"

	"github.com/alnah/go-inkcost"
)

// Example prices a coverage percentage with the default tiers.
func Example() {
	b, err := inkcost.DefaultPriceList().Price(25)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(b.TierName)
	fmt.Println(b.FinalBWPrice, b.FinalColorPrice)
	// Output:
	// Tier 1: Light (0-25%)
	// 2 3
}

// ExampleAnalyzer_Analyze measures a 2x2 page with one black pixel.
func ExampleAnalyzer_Analyze() {
	page := inkcost.Raster{
		Width: 2, Height: 2, Channels: inkcost.ChannelsRGB,
		Pix: []byte{
			0, 0, 0, 255, 255, 255,
			255, 255, 255, 255, 255, 255,
		},
	}

	result, err := inkcost.NewAnalyzer(inkcost.DefaultInkThreshold).Analyze(page)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s %.2f%%\n", result.DocumentType, result.CoveragePercentage)
	// Output: B&W 25.00%
}

// ExamplePriceList_Price shows that boundaries belong to the lower tier.
func ExamplePriceList_Price() {
	prices := inkcost.DefaultPriceList()
	for _, c := range []float64{75, 75.0001} {
		b, _ := prices.Price(c)
		fmt.Printf("%.4f -> %s\n", c, b.TierName)
	}
	// Output:
	// 75.0000 -> Tier 3: Heavy (51-75%)
	// 75.0001 -> Tier 4: Dense/Full (76-100%)
}

// ExampleWriteReport prints a one-page estimate.
func ExampleWriteReport() {
	b, _ := inkcost.DefaultPriceList().Price(4.12)
	report := &inkcost.Report{
		Source:     "memo.docx",
		PDFPath:    "memo.pdf",
		TotalPages: 1,
		Currency:   "PHP",
		Pages: []inkcost.PageResult{{
			Number:   1,
			Analysis: inkcost.AnalysisResult{DocumentType: inkcost.BlackAndWhite, CoveragePercentage: 4.12},
			Pricing:  b,
		}},
	}
	report.Total.Add(b)

	_ = inkcost.WriteReport(os.Stdout, report)
	// Output:
	// --- PAGE 1 OF 1 ---
	// Detected Type: B&W
	// Ink Coverage : 4.12%
	// Assigned Tier: Tier 1: Light (0-25%)
	//   -> B&W   : Paper 1 + Ink 1 = PHP 2.00
	//   -> Color : Paper 1 + Ink 2 = PHP 3.00
	//
	// NOTE: PDF file kept at: memo.pdf
	// ===================================================
	//                GRAND TOTAL ESTIMATE
	// ===================================================
	// Total Pages Processed: 1
	// TOTAL IF PRINTED IN B&W   : PHP 2.00
	// TOTAL IF PRINTED IN COLOR : PHP 3.00
	// ===================================================
}
