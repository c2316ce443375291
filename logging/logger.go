package logging

import (
	"bytes"
	"io"
	"os"
	"time"
)

const (
	TRACE = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

var LogLevelPrefixMap = map[int]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// LogAllWaterMark lets every level through.
const LogAllWaterMark = -1

type Logger interface {
	Trace(records ...string)
	Debug(records ...string)
	Info(records ...string)
	Warn(records ...string)
	Error(records ...string)
	Fatal(records ...string)

	Tracef(format string, records ...any)
	Debugf(format string, records ...any)
	Infof(format string, records ...any)
	Warnf(format string, records ...any)
	Errorf(format string, records ...any)
	Fatalf(format string, records ...any)

	// create new logger
	WithPrefix(prefix string) Logger
	WithWaterMark(waterMark int) Logger
	WithWriter(writer LogWriter) Logger
}

var GlobalLogger Logger = CreateLevelLogger(NewConsoleLogWriter(os.Stdout), "", LogAllWaterMark)

func SetLogger(logger Logger) {
	GlobalLogger = logger
}

type LogEntity struct {
	Level     int
	Prefix    string
	Context   map[string]string
	Timestamp time.Time
	Message   string
	File      string
}

type LogWriter interface {
	Write(entity *LogEntity)
}

type SimpleStringWriter struct {
	consoleWriter io.Writer
}

func NewConsoleLogWriter(writer io.Writer) LogWriter {
	return SimpleStringWriter{
		writer,
	}
}

func (w SimpleStringWriter) Write(logEntity *LogEntity) {
	var builder bytes.Buffer
	builder.WriteString(logEntity.Timestamp.Format(time.RFC3339))
	builder.WriteRune(' ')
	builder.WriteRune('[')
	builder.WriteString(LogLevelPrefixMap[logEntity.Level])
	builder.WriteRune(']')
	builder.WriteRune(' ')
	builder.WriteString(logEntity.Prefix)
	builder.WriteRune(' ')
	builder.WriteString(logEntity.File)
	contexts := logEntity.Context
	ctxLen := len(contexts)
	if ctxLen > 0 {
		builder.WriteRune(' ')
		ctxCnt := 0
		builder.WriteRune('{')
		for k, v := range contexts {
			builder.WriteString(k)
			builder.WriteRune(':')
			builder.WriteString(v)
			ctxCnt++
			if ctxCnt < ctxLen {
				builder.WriteRune(';')
			}
		}
		builder.WriteRune('}')
	}
	builder.WriteRune(' ')
	builder.WriteString(logEntity.Message)
	builder.WriteRune('\n')
	w.consoleWriter.Write(builder.Bytes())
}

type NoopWriter struct{}

func NewNoopWriter() NoopWriter {
	return NoopWriter{}
}

func (w NoopWriter) Write(entity *LogEntity) {}
