package logging

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

type levelLogger struct {
	writer            LogWriter
	prefix            string
	logLevelWaterMark int
}

func StdOutLevelLogger(prefix string) Logger {
	return CreateLevelLogger(NewConsoleLogWriter(os.Stdout), prefix, LogAllWaterMark)
}

func CreateLevelLogger(writer LogWriter, prefix string, waterMark int) Logger {
	return &levelLogger{
		writer:            writer,
		prefix:            prefix,
		logLevelWaterMark: waterMark,
	}
}

func (l *levelLogger) output(level int, message string) {
	if level < l.logLevelWaterMark {
		return
	}
	l.writer.Write(&LogEntity{
		Level:     level,
		Prefix:    l.prefix,
		Context:   loggingContext(),
		Timestamp: time.Now(),
		Message:   message,
		File:      l.callerFile(),
	})
}

func (l *levelLogger) callerFile() string {
	// 3 frames up: callerFile <- output <- exported log fn <- caller
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "???"
	}
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return short + ":" + strconv.Itoa(line)
}

func (l *levelLogger) Trace(records ...string) {
	l.output(TRACE, strings.Join(records, ""))
}

func (l *levelLogger) Debug(records ...string) {
	l.output(DEBUG, strings.Join(records, ""))
}

func (l *levelLogger) Info(records ...string) {
	l.output(INFO, strings.Join(records, ""))
}

func (l *levelLogger) Warn(records ...string) {
	l.output(WARN, strings.Join(records, ""))
}

func (l *levelLogger) Error(records ...string) {
	l.output(ERROR, strings.Join(records, ""))
}

func (l *levelLogger) Fatal(records ...string) {
	l.output(FATAL, strings.Join(records, ""))
}

func (l *levelLogger) Tracef(format string, records ...any) {
	l.output(TRACE, fmt.Sprintf(format, records...))
}

func (l *levelLogger) Debugf(format string, records ...any) {
	l.output(DEBUG, fmt.Sprintf(format, records...))
}

func (l *levelLogger) Infof(format string, records ...any) {
	l.output(INFO, fmt.Sprintf(format, records...))
}

func (l *levelLogger) Warnf(format string, records ...any) {
	l.output(WARN, fmt.Sprintf(format, records...))
}

func (l *levelLogger) Errorf(format string, records ...any) {
	l.output(ERROR, fmt.Sprintf(format, records...))
}

func (l *levelLogger) Fatalf(format string, records ...any) {
	l.output(FATAL, fmt.Sprintf(format, records...))
}

func (l *levelLogger) WithPrefix(prefix string) Logger {
	return CreateLevelLogger(l.writer, prefix, l.logLevelWaterMark)
}

func (l *levelLogger) WithWaterMark(waterMark int) Logger {
	return CreateLevelLogger(l.writer, l.prefix, waterMark)
}

func (l *levelLogger) WithWriter(writer LogWriter) Logger {
	return CreateLevelLogger(writer, l.prefix, l.logLevelWaterMark)
}
