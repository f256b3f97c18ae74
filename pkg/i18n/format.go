package i18n

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingArg     = errors.New("not enough arguments for template")
	ErrBadPlaceholder = errors.New("malformed placeholder")
)

// Format fills positional placeholders in a message template.
// "{}" takes the next argument, "{N}" takes argument N, and "{{" / "}}"
// are literal braces. Automatic and explicit numbering cannot be mixed.
// Extra arguments are ignored.
func Format(template string, args ...any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	next := 0
	auto, manual := false, false
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at %d", ErrBadPlaceholder, i)
			}
			field := template[i+1 : i+1+end]
			idx := next
			if field == "" {
				auto = true
				next++
			} else {
				n, err := strconv.Atoi(field)
				if err != nil || n < 0 {
					return "", fmt.Errorf("%w: {%s}", ErrBadPlaceholder, field)
				}
				manual = true
				idx = n
			}
			if auto && manual {
				return "", fmt.Errorf("%w: cannot mix {} and {N}", ErrBadPlaceholder)
			}
			if idx >= len(args) {
				return "", fmt.Errorf("%w: index %d", ErrMissingArg, idx)
			}
			fmt.Fprint(&b, args[idx])
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at %d", ErrBadPlaceholder, i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
