package transform

import (
	"context"
	"fmt"
	"sync"

	"github.com/shaiso/Relay/internal/domain"
)

// defaultOperation — операция, применяемая если правило не задало transform.
const defaultOperation = "direct"

// Operation — именованная операция трансформации поля.
//
// value — значение, разрешённое по source_field правила (nil, если поле
// отсутствует); params — параметры операции из правила.
type Operation func(value any, params map[string]any) (any, error)

// Engine — движок декларативной трансформации документов.
//
// Engine интерпретирует упорядоченный список правил против вложенного
// source-документа и строит target-документ. Каждый экземпляр несёт свой
// реестр операций; встроенные операции регистрируются при создании,
// дополнительные — через Register до начала прогона.
type Engine struct {
	mu         sync.RWMutex
	operations map[string]Operation
}

// NewEngine создаёт движок с зарегистрированными встроенными операциями:
// direct, default_value, uppercase, lowercase, concatenate, format_date.
func NewEngine() *Engine {
	e := &Engine{operations: make(map[string]Operation)}
	e.Register("direct", opDirect)
	e.Register("default_value", opDefaultValue)
	e.Register("uppercase", opUppercase)
	e.Register("lowercase", opLowercase)
	e.Register("concatenate", opConcatenate)
	e.Register("format_date", opFormatDate)
	return e
}

// Register добавляет операцию в реестр движка.
// Повторная регистрация имени заменяет операцию.
//
// Регистрация потокобезопасна относительно Transform, но по смыслу
// должна происходить до начала прогонов пайплайна.
func (e *Engine) Register(name string, op Operation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.operations[name] = op
}

// get возвращает операцию по имени.
func (e *Engine) get(name string) (Operation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	op, ok := e.operations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Transform применяет правила к source-документу и строит target-документ.
//
// Для каждого правила: разрешается source_field (отсутствие поля — не ошибка,
// операция получает nil), ищется операция, результат записывается по
// target_field с созданием промежуточных mapping'ов. Пустой список правил
// даёт пустой документ.
//
// Любая ошибка (неизвестная операция, правило без target_field, ошибка самой
// операции) прерывает весь вызов и заворачивается в ErrTransform. Уже
// записанные значения не откатываются, но частичный документ наружу не
// возвращается.
func (e *Engine) Transform(ctx context.Context, source map[string]any, rules []domain.Rule) (map[string]any, error) {
	target := make(map[string]any)

	for i := range rules {
		rule := &rules[i]

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransform, err)
		}

		if rule.TargetField == "" {
			return nil, fmt.Errorf("%w: %v", ErrTransform, ErrMissingTargetField)
		}

		opName := rule.Transform
		if opName == "" {
			opName = defaultOperation
		}

		op, err := e.get(opName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransform, err)
		}

		value := resolvePath(source, rule.SourceField)

		result, err := op(value, rule.Params)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrTransform, rule.TargetField, err)
		}

		writePath(target, rule.TargetField, result)
	}

	return target, nil
}
