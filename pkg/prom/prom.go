package prom

import "strings"

// BuildMetric joins the non-empty parts with '_'.
func BuildMetric(names ...string) string {
	var b strings.Builder
	for _, name := range names {
		if name == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("_")
		}
		b.WriteString(name)
	}
	return b.String()
}
