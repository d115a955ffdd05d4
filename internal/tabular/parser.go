package tabular

import "strings"

// ParseLine tokenizes one raw line into fields, honouring RFC4180-like
// quoting for an arbitrary single-character separator: a field may be wrapped
// in double quotes, a doubled quote inside a quoted field is an escaped
// quote, and the separator loses its splitting role while inside quotes.
//
// Leniency rule: a closing quote immediately followed by a character that is
// neither the separator nor another quote ends the quoted section and the
// rest of the field continues literally ("ab"cd parses as abcd). Kept as-is;
// flagged as a revision candidate in DESIGN.md.
func ParseLine(line string, sep rune) []string {
	runes := []rune(line)
	fields := make([]string, 0, 4)
	var field strings.Builder
	inQuotes := false
	fieldStart := true

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuotes {
			if c != '"' {
				field.WriteRune(c)
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			// Closing quote: whatever follows, quoting is over. A
			// trailing separator is handled by the outer state on the
			// next iteration; anything else continues the field
			// literally.
			inQuotes = false
			continue
		}

		switch {
		case c == sep:
			fields = append(fields, field.String())
			field.Reset()
			fieldStart = true
		case c == '"' && fieldStart:
			inQuotes = true
			fieldStart = false
		default:
			field.WriteRune(c)
			fieldStart = false
		}
	}
	fields = append(fields, field.String())
	return fields
}

// FormatLine is the inverse of ParseLine: it joins fields with the separator,
// quoting any field that contains the separator, a quote or a line break.
// Formatting then parsing a field always round-trips exactly.
func FormatLine(fields []string, sep rune) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = escapeField(f, sep)
	}
	return strings.Join(parts, string(sep))
}

func escapeField(field string, sep rune) string {
	if !strings.ContainsRune(field, sep) &&
		!strings.ContainsAny(field, "\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
