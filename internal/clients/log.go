package clients

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type levelWriter struct {
	writer io.Writer
	level  zerolog.Level
}

func (lw *levelWriter) Write(p []byte) (n int, err error) {
	return lw.writer.Write(p)
}

func (lw *levelWriter) WriteLevel(level zerolog.Level, p []byte) (n int, err error) {
	if level >= lw.level {
		return lw.writer.Write(p)
	}
	return len(p), nil
}

// InitLog configura o logger global: console em stdout e arquivo rotativo
// em <baseDir>/log/<fileName>. O arquivo só recebe eventos de nível info ou acima.
// Com debug=true o logger deixa passar debug e trace; o corte fica com o nível global.
// Retorna o lumberjack.Logger, que deve ser fechado pelo chamador, e o caminho do arquivo.
func InitLog(fileName, baseDir string, debug ...bool) (*lumberjack.Logger, string) {
	logDir := filepath.Join(baseDir, "log")
	logFilePath := filepath.Join(logDir, fileName)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Printf("falha ao criar o diretório de logs: %v\n", err)
		os.Exit(1)
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05.000Z07:00"}

	fileLevelWriter := &levelWriter{
		writer: lumberjackLogger,
		level:  zerolog.InfoLevel,
	}

	multi := zerolog.MultiLevelWriter(consoleWriter, fileLevelWriter)
	logger := zerolog.New(multi).With().Timestamp().Logger()

	logger = logger.Level(zerolog.InfoLevel)
	if len(debug) > 0 && debug[0] {
		logger = logger.Level(zerolog.TraceLevel)
	}

	log.Logger = logger

	log.Info().Msg("Logger configurado com sucesso")
	log.Info().Str("log_file", logFilePath).Msg("Logs serão gravados neste arquivo")
	return lumberjackLogger, logFilePath
}

// SetLogLevel ajusta o nível global a partir de um nome (trace, debug, info, warn, error...).
func SetLogLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging: nível inválido %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
