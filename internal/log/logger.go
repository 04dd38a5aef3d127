// Package log configures logrus for the service. The json format is
// the default for Lambda and server deployments; pretty is meant for
// running syncs from a terminal.
package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// PrettyFormatter renders entries as colored single lines for
// terminal output.
type PrettyFormatter struct{}

// Format renders a logrus entry as one human-readable line.
func (f *PrettyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	icon, color := levelMarker(entry.Level)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&fields, " %s%s%s=%v", colorCyan, k, colorReset, entry.Data[k])
	}

	line := fmt.Sprintf("%s%s%s %s%s%s %s%s\n",
		colorGray, entry.Time.Format("15:04:05"), colorReset,
		color, icon, colorReset,
		entry.Message,
		fields.String(),
	)
	return []byte(line), nil
}

func levelMarker(level logrus.Level) (string, string) {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "✗", colorRed
	case logrus.WarnLevel:
		return "⚠", colorYellow
	case logrus.DebugLevel, logrus.TraceLevel:
		return "·", colorGray
	default:
		return "•", colorGreen
	}
}

// NewLogger creates a configured logrus logger.
func NewLogger(level string, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	setFormatter(logger, format)
	setLevel(logger, level)
	return logger
}

// Configure sets output, format, and level on an existing logger.
func Configure(logger *logrus.Logger, out io.Writer, level string, format string) {
	if out != nil {
		logger.SetOutput(out)
	}
	setFormatter(logger, format)
	setLevel(logger, level)
}

func setFormatter(logger *logrus.Logger, format string) {
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "pretty":
		logger.SetFormatter(&PrettyFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
}

func setLevel(logger *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}
