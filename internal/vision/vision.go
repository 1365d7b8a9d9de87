// Package vision provides optical-text recognizers backed by vision
// models. Each recognizer takes a decoded bitmap and returns candidate
// transcriptions per detected text region.
package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/zombor/trip-tracker/internal/extraction"
)

// transcribePrompt is the shared prompt used by all vision providers
// for reading boarding-pass text. It asks for a bare transcription so
// the downstream extractor sees exactly what is printed on the pass.
const transcribePrompt = `Read every piece of text visible in this image of a travel document. Answer with the text only, one detected line per line, in natural reading order. Preserve the original wording, casing and numbers exactly. Do not describe the image, do not translate, and do not add any formatting or commentary.`

// encodePNG serializes a bitmap for transport to a vision model.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// regionsFromText splits a transcription into per-line regions with a
// single full-confidence candidate each. Vision chat models return one
// transcription rather than ranked alternatives, so each line maps to
// one region with one candidate.
func regionsFromText(text string) [][]extraction.RecognizedCandidate {
	var regions [][]extraction.RecognizedCandidate
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		regions = append(regions, []extraction.RecognizedCandidate{{Text: line, Confidence: 1}})
	}
	return regions
}
