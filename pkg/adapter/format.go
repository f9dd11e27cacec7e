package adapter

import (
	"encoding/json"
	"strings"

	logger "github.com/shuliangfu/logger"
)

// unserializablePlaceholder replaces payload values that cannot be encoded
// as JSON (cycles, channels, functions). Formatting never fails a log call.
const unserializablePlaceholder = "[unserializable]"

// formatEntry renders the entry according to the configured format. The
// color format shares the text layout with ANSI codes around the level
// label.
func formatEntry(entry *logger.Entry, config *logger.Config, useColor bool) string {
	if config.Format == logger.JSONFormat {
		return formatJSON(entry, config)
	}

	return formatText(entry, config, useColor)
}

// formatText renders the single-line text layout:
//
//	<timestamp> [LEVEL] message [tag1, tag2] {"context":...} {"data":...}
//
// with the error message and stack appended on following lines when an
// error is attached. Empty sections are omitted along with their leading
// space.
func formatText(entry *logger.Entry, config *logger.Config, useColor bool) string {
	var b strings.Builder

	if !config.DisableTimestamp && entry.Timestamp != "" {
		b.WriteString(entry.Timestamp)
		b.WriteByte(' ')
	}

	if !config.DisableLevelLabel {
		label := "[" + entry.Level.Label() + "]"
		if useColor {
			label = logger.LevelColor(entry.Level) + label + logger.Reset
		}

		b.WriteString(label)
		b.WriteByte(' ')
	}

	b.WriteString(entry.Message)

	if len(entry.Tags) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(entry.Tags, ", "))
		b.WriteByte(']')
	}

	if len(entry.Context) > 0 {
		b.WriteByte(' ')
		b.WriteString(encodeValue(safeContext(entry.Context)))
	}

	if entry.Data != nil {
		b.WriteByte(' ')
		b.WriteString(encodeValue(safeValue(entry.Data)))
	}

	if entry.Err != nil {
		b.WriteByte('\n')

		if entry.Err.Stack != "" {
			b.WriteString(entry.Err.Stack)
		} else {
			b.WriteString(entry.Err.Message)
		}
	}

	return b.String()
}

// formatJSON renders the entry as a single JSON object with lowercase level
// names. Absent fields are omitted rather than emitted as null.
func formatJSON(entry *logger.Entry, config *logger.Config) string {
	payload := make(map[string]any, 7) //nolint:mnd // Field count of the envelope.

	if !config.DisableTimestamp && entry.Timestamp != "" {
		payload["timestamp"] = entry.Timestamp
	}

	payload["level"] = entry.Level.String()
	payload["message"] = entry.Message

	if entry.Data != nil {
		payload["data"] = safeValue(entry.Data)
	}

	if entry.Err != nil {
		errPayload := map[string]any{"message": entry.Err.Message}
		if entry.Err.Stack != "" {
			errPayload["stack"] = entry.Err.Stack
		}

		payload["error"] = errPayload
	}

	if len(entry.Tags) > 0 {
		payload["tags"] = entry.Tags
	}

	if len(entry.Context) > 0 {
		payload["context"] = safeContext(entry.Context)
	}

	return encodeValue(payload)
}

// safeValue returns the value unchanged when it is JSON-encodable, the
// placeholder otherwise.
func safeValue(value any) any {
	_, err := json.Marshal(value)
	if err != nil {
		return unserializablePlaceholder
	}

	return value
}

// safeContext sanitizes a context map value by value, so one bad entry
// does not blank out the rest of the context.
func safeContext(ctx map[string]any) map[string]any {
	_, err := json.Marshal(ctx)
	if err == nil {
		return ctx
	}

	sanitized := make(map[string]any, len(ctx))
	for key, value := range ctx {
		sanitized[key] = safeValue(value)
	}

	return sanitized
}

func encodeValue(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return `"` + unserializablePlaceholder + `"`
	}

	return string(encoded)
}
