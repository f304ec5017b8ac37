package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type CommonLogger struct {
	Info    zerolog.Logger
	Error   zerolog.Logger
	Trace   zerolog.Logger
	Warning zerolog.Logger
	Stream  zerolog.Logger
}

type AppLogger struct {
	Http CommonLogger
	WS   CommonLogger
}

func NewLogger(dir string) *AppLogger {
	_ = os.MkdirAll(dir, 0755)

	zerolog.TimeFieldFormat = "2006-01-02 15:04:05.000"

	consoleWriter := consoleConfWriter()

	file := func(name string) string { return filepath.Join(dir, name) }

	log := &AppLogger{}

	log.Http.Stream = newMultiLogger(consoleWriter, file("stream.log"))
	log.Http.Info = newMultiLogger(consoleWriter, file("info.log"))
	log.Http.Trace = newMultiLogger(consoleWriter, file("trace.log"))
	log.Http.Warning = newMultiLogger(consoleWriter, file("warning.log"))
	log.Http.Error = newMultiLogger(consoleWriter, file("error.log"))

	log.WS.Stream = newMultiLogger(consoleWriter, file("ws.stream.log"))
	log.WS.Info = newMultiLogger(consoleWriter, file("ws.info.log"))
	log.WS.Trace = newMultiLogger(consoleWriter, file("ws.trace.log"))
	log.WS.Warning = newMultiLogger(consoleWriter, file("ws.warning.log"))
	log.WS.Error = newMultiLogger(consoleWriter, file("ws.error.log"))

	return log
}

// NewNopLogger discards everything. Used by tests and tooling.
func NewNopLogger() *AppLogger {
	nop := zerolog.Nop()
	common := CommonLogger{Info: nop, Error: nop, Trace: nop, Warning: nop, Stream: nop}
	return &AppLogger{Http: common, WS: common}
}

func newMultiLogger(console zerolog.ConsoleWriter, filepath string) zerolog.Logger {
	multi := io.MultiWriter(console, fileConsoleWriter(filepath))

	return zerolog.New(multi).With().Timestamp().Logger()
}

func consoleConfWriter() zerolog.ConsoleWriter {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05.000",
		NoColor:    false,
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%s]", i)
		},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("[%s]", strings.ToUpper(fmt.Sprint(i)))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}
	return consoleWriter
}

func fileConsoleWriter(filename string) io.Writer {
	return zerolog.ConsoleWriter{
		Out: &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    5,
			MaxAge:     20,
			MaxBackups: 5,
			Compress:   true,
		},
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05.000",
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%s]", i)
		},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("[%s]", strings.ToUpper(fmt.Sprint(i)))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%v", i)
		},
	}
}
