package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomJSONFormatter emits one JSON object per line with flattened fields,
// suitable for log shipping.
type CustomJSONFormatter struct {
	TimestampFormat string
	AppName         string
}

func (f *CustomJSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = time.RFC3339
	}

	data := make(map[string]interface{}, len(entry.Data)+5)
	data["timestamp"] = entry.Time.Format(tsFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if f.AppName != "" {
		data["app"] = f.AppName
	}
	if entry.HasCaller() {
		data["caller"] = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}
	for k, v := range entry.Data {
		data[k] = v
	}

	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	if err := json.NewEncoder(b).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}
	return b.Bytes(), nil
}

// CustomTextFormatter is the human-readable development format with sorted
// key=value fields.
type CustomTextFormatter struct {
	TimestampFormat string
	ForceColors     bool
	DisableColors   bool
	AppName         string
}

func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = "2006-01-02 15:04:05"
	}

	level := strings.ToUpper(entry.Level.String())
	if f.ForceColors && !f.DisableColors {
		level = f.colorize(entry.Level) + level + "\033[0m"
	}

	fmt.Fprintf(b, "%s [%s] ", entry.Time.Format(tsFormat), level)
	if f.AppName != "" {
		fmt.Fprintf(b, "[%s] ", f.AppName)
	}
	if entry.HasCaller() {
		fmt.Fprintf(b, "[%s:%d] ", entry.Caller.File, entry.Caller.Line)
	}
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		fields := make([]string, 0, len(entry.Data))
		for k, v := range entry.Data {
			fields = append(fields, fmt.Sprintf("%s=%v", k, v))
		}
		sort.Strings(fields)
		fmt.Fprintf(b, " %s", strings.Join(fields, " "))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *CustomTextFormatter) colorize(level logrus.Level) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "\033[31m"
	case logrus.WarnLevel:
		return "\033[33m"
	case logrus.InfoLevel:
		return "\033[36m"
	default:
		return "\033[37m"
	}
}
