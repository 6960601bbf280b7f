package nfs

import "strconv"

// parseNumericSequence reads up to maxCount whitespace separated unsigned
// integers from text. It stops at the end of the string or at the first
// line terminator and returns what it has read so far; the caller
// compares len(values) with the size of the catalog it fills.
func parseNumericSequence(text string, maxCount int) ([]uint64, error) {
	values := make([]uint64, 0, maxCount)
	i := 0
	for len(values) < maxCount {
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i == len(text) || text[i] == '\n' || text[i] == '\r' {
			break
		}

		start := i
		for i < len(text) && !isTokenEnd(text[i]) {
			i++
		}

		token := text[start:i]
		v, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return values, &NumberError{Index: len(values), Token: token, Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

func isTokenEnd(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
