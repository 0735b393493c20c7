// internal/infra/logger/logger.go
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// NameField is the entry field LineFormatter prints as the logger name.
const NameField = "logger"

// New builds a logger that appends to cfg.LogFile and mirrors every line to stdout.
// The returned closer releases the log file.
func New(cfg *config.AppConfig) (*logrus.Logger, io.Closer, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}

	log := logrus.New()
	Configure(log, io.MultiWriter(f, os.Stdout), cfg)
	return log, f, nil
}

// Configure applies level and formatter settings from cfg and points log at out.
func Configure(log *logrus.Logger, out io.Writer, cfg *config.AppConfig) {
	log.SetOutput(out)

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(level)
	}

	// Set Log Formatter
	if cfg.Environment == "production" || cfg.Environment == "staging" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&LineFormatter{DefaultName: "homework"})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	log.Debugf("Log format set for environment: %s", cfg.Environment)
}

// LineFormatter writes "timestamp, LEVEL, message, name" lines.
// Fields other than the logger name are appended to the message as key=value pairs.
type LineFormatter struct {
	DefaultName string
}

const lineTimestampFormat = "2006-01-02 15:04:05,000"

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	name := f.DefaultName
	if v, ok := entry.Data[NameField]; ok {
		name = fmt.Sprint(v)
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == NameField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	msg.WriteString(entry.Message)
	for _, k := range keys {
		fmt.Fprintf(&msg, " %s=%v", k, entry.Data[k])
	}

	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	fmt.Fprintf(b, "%s, %s, %s, %s\n",
		entry.Time.Format(lineTimestampFormat),
		strings.ToUpper(entry.Level.String()),
		msg.String(),
		name,
	)
	return b.Bytes(), nil
}
