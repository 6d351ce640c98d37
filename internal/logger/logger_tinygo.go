//go:build tinygo

package logger

import (
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// ConsoleLogger prints "level msg key=value ..." lines on the serial console.
// zap does not build for microcontroller targets.
type ConsoleLogger struct {
	level contracts.LogLevel
}

// NewDefault returns the default logger of the platform.
func NewDefault() contracts.Logger {
	return &ConsoleLogger{level: contracts.InfoLevel}
}

// Info logs a message at the INFO level
func (c *ConsoleLogger) Info(msg string, fields ...contracts.Field) {
	c.log(contracts.InfoLevel, msg, fields)
}

// Error logs a message at the ERROR level
func (c *ConsoleLogger) Error(msg string, fields ...contracts.Field) {
	c.log(contracts.ErrorLevel, msg, fields)
}

// Debug logs a message at the DEBUG level
func (c *ConsoleLogger) Debug(msg string, fields ...contracts.Field) {
	c.log(contracts.DebugLevel, msg, fields)
}

// Warn logs a message at the WARN level
func (c *ConsoleLogger) Warn(msg string, fields ...contracts.Field) {
	c.log(contracts.WarnLevel, msg, fields)
}

// Fatal logs and halts.
func (c *ConsoleLogger) Fatal(msg string, fields ...contracts.Field) {
	c.log(contracts.FatalLevel, msg, fields)
	os.Exit(1)
}

// Field returns a new instance of Field
func (c *ConsoleLogger) Field() contracts.Field {
	return consoleField{}
}

// SetLevel sets the logging level
func (c *ConsoleLogger) SetLevel(level contracts.LogLevel) {
	c.level = level
}

// SetDestination is a no-op: there is only the console.
func (c *ConsoleLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {}

func (c *ConsoleLogger) log(level contracts.LogLevel, msg string, fields []contracts.Field) {
	if !c.level.Allows(level) {
		return
	}
	var b strings.Builder
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, field := range fields {
		if f, ok := field.(consoleField); ok {
			b.WriteByte(' ')
			b.WriteString(f.key)
			b.WriteByte('=')
			b.WriteString(f.value)
		}
	}
	println(b.String())
}

type consoleField struct {
	key   string
	value string
}

func (consoleField) Bool(key string, val bool) contracts.Field {
	return consoleField{key, strconv.FormatBool(val)}
}

func (consoleField) Int(key string, val int) contracts.Field {
	return consoleField{key, strconv.Itoa(val)}
}

func (consoleField) Float64(key string, val float64) contracts.Field {
	return consoleField{key, strconv.FormatFloat(val, 'g', -1, 64)}
}

func (consoleField) String(key string, val string) contracts.Field {
	return consoleField{key, val}
}

func (consoleField) Time(key string, val time.Time) contracts.Field {
	return consoleField{key, strconv.FormatInt(val.UnixMilli(), 10)}
}

func (consoleField) Int64(key string, val int64) contracts.Field {
	return consoleField{key, strconv.FormatInt(val, 10)}
}

func (consoleField) Error(key string, val error) contracts.Field {
	if val == nil {
		return consoleField{key, "<nil>"}
	}
	return consoleField{key, val.Error()}
}

func (consoleField) Uint64(key string, val uint64) contracts.Field {
	return consoleField{key, strconv.FormatUint(val, 10)}
}

func (consoleField) Uint8(key string, val uint8) contracts.Field {
	return consoleField{key, strconv.FormatUint(uint64(val), 10)}
}

func (consoleField) Binary(key string, val []byte) contracts.Field {
	return consoleField{key, hex.EncodeToString(val)}
}
