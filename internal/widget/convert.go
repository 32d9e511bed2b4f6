package widget

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/bindkit/internal/paths"
)

func mismatch(v any, want string) error {
	return fmt.Errorf("%w: cannot use %T as %s", paths.ErrTypeMismatch, v, want)
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", mismatch(v, "text")
	}
}

func toBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(v, "bool")
	}
	return b, nil
}

// toInt accepts integer types and integral floats, which is how JSON
// numbers arrive.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, mismatch(v, "int")
		}
		return int(n), nil
	default:
		return 0, mismatch(v, "int")
	}
}

func toInts(v any) ([]int, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case []int:
		return s, nil
	case []any:
		out := make([]int, len(s))
		for i, e := range s {
			n, err := toInt(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		n, err := toInt(v)
		if err != nil {
			return nil, mismatch(v, "[]int")
		}
		return []int{n}, nil
	}
}

// ParseColor resolves a W3C color name or "#rrggbb" value.
func ParseColor(s string) (tcell.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "default" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: unknown color %q", paths.ErrTypeMismatch, s)
	}
	return c, nil
}

func toColor(v any) (tcell.Color, error) {
	switch c := v.(type) {
	case tcell.Color:
		return c, nil
	case string:
		return ParseColor(c)
	default:
		return tcell.ColorDefault, mismatch(v, "color")
	}
}

// ParseFont builds a style from attribute names separated by spaces, commas
// or plus signs, such as "bold+italic".
func ParseFont(s string) (tcell.Style, error) {
	style := tcell.StyleDefault
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '+'
	})
	for _, f := range fields {
		switch f {
		case "plain", "normal":
		case "bold":
			style = style.Bold(true)
		case "dim":
			style = style.Dim(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "blink":
			style = style.Blink(true)
		case "reverse":
			style = style.Reverse(true)
		case "strikethrough":
			style = style.StrikeThrough(true)
		default:
			return tcell.StyleDefault, fmt.Errorf("%w: unknown font attribute %q", paths.ErrTypeMismatch, f)
		}
	}
	return style, nil
}

func toStyle(v any) (tcell.Style, error) {
	switch s := v.(type) {
	case tcell.Style:
		return s, nil
	case string:
		return ParseFont(s)
	default:
		return tcell.StyleDefault, mismatch(v, "font")
	}
}
