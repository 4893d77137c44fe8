package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Enabled bool = false

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Configurar liga ou desliga as mensagens de debug, enviando-as para saida
func Configurar(saida io.Writer, ativo bool) {
	Enabled = ativo
	nivel := slog.LevelInfo
	if ativo {
		nivel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(saida, &slog.HandlerOptions{Level: nivel}))
}

// Logger devolve o logger atual do compilador
func Logger() *slog.Logger {
	return logger
}

// Log registra um evento estruturado em nível debug
func Log(mensagem string, atributos ...any) {
	if Enabled {
		logger.Debug(mensagem, atributos...)
	}
}

func Printf(format string, args ...interface{}) {
	if Enabled {
		logger.Debug(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}

func Println(args ...interface{}) {
	if Enabled {
		logger.Debug(strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
}
