package handler

import (
	"strconv"
	"strings"
)

// accepts reports whether an Accept header admits mediaType. A missing
// header accepts anything. Otherwise the most specific matching range
// (exact, then type/*, then */*) decides, and q=0 on it refuses.
func accepts(header, mediaType string) bool {
	if strings.TrimSpace(header) == "" {
		return true
	}
	mediaType = strings.ToLower(mediaType)
	typ, _, _ := strings.Cut(mediaType, "/")

	best, bestQ := 0, 0.0
	for _, part := range strings.Split(header, ",") {
		params := strings.Split(part, ";")
		rng := strings.ToLower(strings.TrimSpace(params[0]))

		var specificity int
		switch rng {
		case mediaType:
			specificity = 3
		case typ + "/*":
			specificity = 2
		case "*/*":
			specificity = 1
		default:
			continue
		}
		q := qualityOf(params[1:])
		// Among equally specific ranges the highest q counts.
		if specificity > best || (specificity == best && q > bestQ) {
			best, bestQ = specificity, q
		}
	}
	return best > 0 && bestQ > 0
}

func qualityOf(params []string) float64 {
	for _, p := range params {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || strings.ToLower(strings.TrimSpace(k)) != "q" {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}
