// Package fuzztests houses Go fuzz harnesses for the lexer.
//
// Назначение: прогонять произвольные байты через лексер во всех трёх диалектах и
// проверять, что он не паникует, не зацикливается и покрывает вход токенами.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag, internal/testkit.
package fuzztests
