package lexer

import (
	"scr/internal/diag"
	"scr/internal/dialect"
	"scr/internal/source"
)

// maxTokenLength caps a single token; longer input is reported and skipped.
const maxTokenLength = 1 << 20

type Options struct {
	// Syntax выбирает диалект; нулевое значение — Scss.
	Syntax dialect.Syntax
	// Reporter может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	Reporter diag.Reporter
	// Interner, если задан, хранит материализованный текст токенов.
	Interner *source.Interner
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
