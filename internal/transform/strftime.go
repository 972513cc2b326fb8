package transform

import (
	"fmt"
	"strings"
)

// strftimeDirectives — соответствие strftime-директив Go reference layout.
//
// Конфигурации customer'ов исторически используют strftime-шаблоны (%Y-%m-%d),
// поэтому движок принимает их, а не Go-layout'ы.
var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'p': "PM",
	'z': "-0700",
	'Z': "MST",
}

// strftimeToLayout переводит strftime-шаблон в Go layout.
// Неизвестная директива — ошибка ErrBadDateFormat.
func strftimeToLayout(format string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(format) {
			return "", fmt.Errorf("%w: trailing %%", ErrBadDateFormat)
		}

		i++
		d := format[i]
		if d == '%' {
			b.WriteByte('%')
			continue
		}

		layout, ok := strftimeDirectives[d]
		if !ok {
			return "", fmt.Errorf("%w: %%%c", ErrBadDateFormat, d)
		}
		b.WriteString(layout)
	}

	return b.String(), nil
}
