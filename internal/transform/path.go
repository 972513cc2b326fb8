package transform

import "strings"

// resolvePath извлекает значение по dot-пути из вложенного документа.
//
// Пустой путь означает "весь документ". Если какой-то сегмент отсутствует
// или текущее значение не является mapping'ом, возвращается nil — это не
// ошибка: отсутствующие поля обрабатывают сами операции (default_value и т.д.).
func resolvePath(doc map[string]any, path string) any {
	if path == "" {
		return doc
	}

	var value any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value = m[key]
	}
	return value
}

// writePath записывает значение по dot-пути в целевой документ,
// создавая промежуточные mapping'и по мере необходимости.
//
// Если промежуточный сегмент уже занят не-mapping значением,
// он перезаписывается новым mapping'ом (побеждает последнее правило).
func writePath(doc map[string]any, path string, value any) {
	keys := strings.Split(path, ".")
	current := doc

	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[key] = next
		}
		current = next
	}

	current[keys[len(keys)-1]] = value
}
