package respond

import (
	"net/http"
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Types are lower-cased,
// a bare type becomes type/*, and a missing or invalid q defaults to 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if mt == "" {
			continue
		}
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok {
			subtype = "*"
		}
		r := mediaRange{typ: strings.TrimSpace(typ), subtype: strings.TrimSpace(subtype), q: 1.0}
		for _, p := range params[1:] {
			key, val, found := strings.Cut(strings.TrimSpace(p), "=")
			if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || q < 0 || q > 1 {
				q = 1.0
			}
			r.q = q
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// matchSpecificity scores how precisely r names application/problem+suffix or
// application/suffix. Higher is more specific; -1 means no match.
func matchSpecificity(r mediaRange, suffix string) int {
	switch {
	case r.typ == "*" && r.subtype == "*":
		return 0
	case r.typ != "application":
		return -1
	case r.subtype == "*":
		return 1
	case r.subtype == "*+"+suffix:
		return 2
	case r.subtype == suffix:
		return 3
	case r.subtype == "problem+"+suffix:
		return 4
	default:
		return -1
	}
}

// preference returns the q-value of the most specific range matching suffix.
func preference(ranges []mediaRange, suffix string) (q float64, specificity int) {
	specificity = -1
	for _, r := range ranges {
		s := matchSpecificity(r, suffix)
		if s < 0 {
			continue
		}
		if s > specificity || (s == specificity && r.q > q) {
			specificity = s
			q = r.q
		}
	}
	return q, specificity
}

// selectFormat reports whether a problem response should be CBOR. The q-value
// ranks first and specificity breaks ties; a full tie goes to JSON.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborQ, cborSpec := preference(ranges, "cbor")
	if cborSpec < 0 || cborQ <= 0 {
		return false
	}
	jsonQ, jsonSpec := preference(ranges, "json")
	if jsonSpec < 0 || jsonQ <= 0 {
		return true
	}
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborSpec > jsonSpec
}

// ensureVary appends values to the Vary header, skipping tokens already present.
func ensureVary(h http.Header, values ...string) {
	present := make(map[string]struct{})
	for _, v := range h.Values("Vary") {
		for token := range strings.SplitSeq(v, ",") {
			present[strings.ToLower(strings.TrimSpace(token))] = struct{}{}
		}
	}
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := present[key]; ok {
			continue
		}
		present[key] = struct{}{}
		h.Add("Vary", v)
	}
}
