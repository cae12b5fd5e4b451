// Package sl contém auxiliares para o logger slog, padronizando a
// formação de campos estruturados de erro.
package sl

import "log/slog"

// Err retorna um slog.Attr com a chave "error" e o texto do erro.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
