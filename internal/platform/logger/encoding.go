package logger

import (
	"strings"

	"github.com/nulzo/summary-gateway/internal/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const coloredConsole = "colored-console"

var pool = buffer.NewPool()

func init() {
	if err := zap.RegisterEncoder(coloredConsole, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return NewColoredConsoleEncoder(cfg), nil
	}); err != nil {
		panic(err)
	}
}

// coloredConsoleEncoder wraps zap's standard console encoder to add syntax highlighting to JSON blobs
type coloredConsoleEncoder struct {
	zapcore.Encoder
}

func NewColoredConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &coloredConsoleEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
	}
}

// Clone is required to implement the Encoder interface
func (c *coloredConsoleEncoder) Clone() zapcore.Encoder {
	return &coloredConsoleEncoder{
		Encoder: c.Encoder.Clone(),
	}
}

// EncodeEntry highlights the trailing JSON field blob of a console line,
// which zap separates from the message with a tab.
func (c *coloredConsoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := c.Encoder.EncodeEntry(ent, fields)
	if err != nil {
		return nil, err
	}

	line := buf.String()
	idx := strings.Index(line, "\t{")
	if idx == -1 {
		return buf, nil
	}

	out := pool.Get()
	out.AppendString(line[:idx+1])
	out.AppendString(cli.HighlightJSON(line[idx+1:]))
	buf.Free()

	return out, nil
}
