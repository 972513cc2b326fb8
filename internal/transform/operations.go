package transform

import (
	"fmt"
	"strings"
	"time"
)

// Значения по умолчанию встроенных операций.
const (
	defaultSeparator    = " "
	defaultInputFormat  = "%Y-%m-%d"
	defaultOutputFormat = "%d/%m/%Y"
)

// opDirect — passthrough: возвращает значение без изменений.
func opDirect(value any, _ map[string]any) (any, error) {
	return value, nil
}

// opDefaultValue возвращает параметр default, если значение отсутствует
// или является пустой строкой; иначе само значение.
func opDefaultValue(value any, params map[string]any) (any, error) {
	if value == nil || value == "" {
		return params["default"], nil
	}
	return value, nil
}

// opUppercase приводит строковое представление значения к верхнему регистру.
// Отсутствующее значение даёт пустую строку.
func opUppercase(value any, _ map[string]any) (any, error) {
	return strings.ToUpper(stringify(value)), nil
}

// opLowercase приводит строковое представление значения к нижнему регистру.
// Отсутствующее значение даёт пустую строку.
func opLowercase(value any, _ map[string]any) (any, error) {
	return strings.ToLower(stringify(value)), nil
}

// opConcatenate склеивает поля mapping'а через разделитель.
//
// Параметры:
//   - fields ([]string): имена полей внутри разрешённого значения (обязательно)
//   - separator (string): разделитель. Default: один пробел
//
// Отсутствующее поле превращается в пустую строку. Если fields не заданы
// или значение не mapping — возвращается строковое представление значения.
func opConcatenate(value any, params map[string]any) (any, error) {
	fields := stringSlice(params["fields"])
	m, isMap := value.(map[string]any)

	if len(fields) == 0 || !isMap {
		return stringify(value), nil
	}

	separator := defaultSeparator
	if s, ok := params["separator"].(string); ok {
		separator = s
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = stringify(m[f])
	}
	return strings.Join(parts, separator), nil
}

// opFormatDate перепарсивает дату из одного strftime-формата в другой.
//
// Параметры:
//   - input_format (string): strftime-шаблон входа. Default: "%Y-%m-%d"
//   - output_format (string): strftime-шаблон выхода. Default: "%d/%m/%Y"
//
// Дата интерпретируется как UTC. Пустое/отсутствующее значение даёт пустую
// строку; невалидная дата — ошибка парсинга.
func opFormatDate(value any, params map[string]any) (any, error) {
	s := stringify(value)
	if s == "" {
		return "", nil
	}

	inputFormat := defaultInputFormat
	if f, ok := params["input_format"].(string); ok && f != "" {
		inputFormat = f
	}
	outputFormat := defaultOutputFormat
	if f, ok := params["output_format"].(string); ok && f != "" {
		outputFormat = f
	}

	inputLayout, err := strftimeToLayout(inputFormat)
	if err != nil {
		return nil, err
	}
	outputLayout, err := strftimeToLayout(outputFormat)
	if err != nil {
		return nil, err
	}

	t, err := time.ParseInLocation(inputLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse date %q with format %q: %w", s, inputFormat, err)
	}

	return t.Format(outputLayout), nil
}

// stringify — строковое представление значения; nil превращается в "".
func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// stringSlice превращает параметр операции в []string.
// Параметры приходят из YAML/JSON, поэтому список может быть []any.
func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = stringify(item)
		}
		return out
	default:
		return nil
	}
}
