// Package transform реализует декларативную трансформацию документов.
//
// Движок берёт вложенный source-документ и упорядоченный список правил
// (source-путь → операция → target-путь) и строит target-документ.
// Реестр операций расширяем: свои операции регистрируются до запуска
// пайплайна через Engine.Register.
package transform
