package domain

// Rule — декларативное правило трансформации: одно поле source
// отображается в одно поле target через именованную операцию.
//
// Правила вычисляются независимо друг от друга; если два правила пишут
// в один target-путь, побеждает последнее.
type Rule struct {
	// TargetField — dot-путь в целевом документе (обязательно).
	TargetField string `json:"target_field" yaml:"target_field" validate:"required"`

	// SourceField — dot-путь в исходном документе.
	// Пустая строка означает "весь документ".
	SourceField string `json:"source_field,omitempty" yaml:"source_field"`

	// Transform — имя операции из реестра. Default: "direct".
	Transform string `json:"transform,omitempty" yaml:"transform"`

	// Params — параметры операции (зависят от операции).
	// Для concatenate: fields, separator
	// Для format_date: input_format, output_format
	// Для default_value: default
	Params map[string]any `json:"params,omitempty" yaml:"params"`
}

// SyncSpec — валидированная конфигурация одной синхронизации:
// откуда забрать, как преобразовать, куда доставить.
//
// SyncSpec поставляется конфигурационным слоем per customer + config-name
// и read-only для пайплайна.
type SyncSpec struct {
	// Source — endpoint для загрузки исходных данных.
	Source Endpoint `json:"source" yaml:"source" validate:"required"`

	// Destination — endpoint для доставки результата.
	Destination Endpoint `json:"destination" yaml:"destination" validate:"required"`

	// Rules — упорядоченный список правил трансформации.
	// Пустой список валиден: движок тогда строит пустой документ.
	Rules []Rule `json:"rules" yaml:"rules" validate:"dive"`
}
