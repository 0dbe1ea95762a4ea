package svg

import (
	"encoding/base64"
	"strings"
)

// encodeDataURI wraps an already-optimized SVG string as a data: URI per
// mode, matching apply_datauri_encoding in the reference implementation
// (original_source/src/optimizer.rs). It runs exactly once, after multipass
// has converged, never per-iteration.
func encodeDataURI(svgText string, mode DataURIMode) string {
	switch mode {
	case DataURIBase64:
		return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgText))
	case DataURIEnc:
		return "data:image/svg+xml," + percentEncodeMinimal(svgText)
	case DataURIUnenc:
		return "data:image/svg+xml," + svgText
	default:
		return svgText
	}
}

// percentEncodeMinimal escapes only the characters unsafe in a bare (not
// base64) data URI, matching the reference implementation's Enc variant: a
// small fixed substitution table, not full percent-encoding.
func percentEncodeMinimal(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		"#", "%23",
		`"`, "%22",
		" ", "%20",
		"<", "%3C",
		">", "%3E",
	)
	return r.Replace(s)
}
