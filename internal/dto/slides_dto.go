package dto

import "github.com/TMgolfkid359/Magnolia-App/pkg/pptx"

// ExtractSlidesRequest carries a base64-encoded presentation, optionally with
// a data-URI prefix.
type ExtractSlidesRequest struct {
	FileData string `json:"fileData" validate:"required"`
}

// ExtractSlidesResponse returns the extracted deck ordered by slide number.
type ExtractSlidesResponse struct {
	Slides []pptx.Slide `json:"slides"`
	Count  int          `json:"count"`
}

// NewExtractSlidesResponse wraps extracted slides, never returning nil.
func NewExtractSlidesResponse(slides []pptx.Slide) ExtractSlidesResponse {
	if slides == nil {
		slides = []pptx.Slide{}
	}
	return ExtractSlidesResponse{Slides: slides, Count: len(slides)}
}
