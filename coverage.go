package inkcost

import "fmt"

// DefaultInkThreshold is the luminance at or above which a pixel counts as
// blank paper.
const DefaultInkThreshold uint8 = 240

// BT.601 luma weights in 14-bit fixed point.
const (
	lumaShift = 14
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaRound = 1 << (lumaShift - 1)
)

// Analyzer measures ink coverage and detects color content on page rasters.
type Analyzer struct {
	threshold uint8
}

// NewAnalyzer creates an Analyzer. Pixels with luminance strictly below
// threshold are ink.
func NewAnalyzer(threshold uint8) *Analyzer {
	return &Analyzer{threshold: threshold}
}

// Threshold returns the ink luminance threshold.
func (a *Analyzer) Threshold() uint8 {
	return a.threshold
}

// Analyze classifies the page as color or black-and-white and computes the
// percentage of ink pixels. RGBA rasters are flattened first.
// A non-nil error means the page could not be analyzed.
func (a *Analyzer) Analyze(r Raster) (AnalysisResult, error) {
	flat, err := r.Flatten()
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	docType := BlackAndWhite
	ink := 0
	pix := flat.Pix
	for i := 0; i+2 < len(pix); i += ChannelsRGB {
		red, green, blue := uint32(pix[i]), uint32(pix[i+1]), uint32(pix[i+2])
		if green != red {
			docType = Color
		}
		if luminance(red, green, blue) < uint32(a.threshold) {
			ink++
		}
	}

	total := flat.Width * flat.Height
	if total <= 0 {
		return AnalysisResult{}, fmt.Errorf("%w: %w: no pixels", ErrAnalysis, ErrMalformedRaster)
	}
	return AnalysisResult{
		DocumentType:       docType,
		CoveragePercentage: float64(ink) / float64(total) * 100,
	}, nil
}

func luminance(r, g, b uint32) uint32 {
	return (r*lumaR + g*lumaG + b*lumaB + lumaRound) >> lumaShift
}
