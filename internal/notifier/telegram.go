package notifier

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

// Sender is the part of *tele.Bot the notifier needs.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Core is a zapcore.Core that relays log records to an operator Telegram
// chat. Wire it with zapcore.NewTee next to the regular core so exceptions
// raised while handling chat events reach the developer. Delivery is
// best-effort: a failed send is dropped rather than logged, to avoid
// recursing into the logger.
type Core struct {
	zapcore.LevelEnabler
	sender Sender
	chatID int64
	fields []zapcore.Field
}

// NewCore creates a relay core for records at or above the enabled level.
func NewCore(sender Sender, chatID int64, enab zapcore.LevelEnabler) *Core {
	return &Core{
		LevelEnabler: enab,
		sender:       sender,
		chatID:       chatID,
	}
}

func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)

	_, _ = c.sender.Send(tele.ChatID(c.chatID), formatEntry(ent, all))
	return nil
}

func (c *Core) Sync() error {
	return nil
}

// formatEntry renders a log record as a plain-text chat message:
// level and message on the first line, one field per following line.
func formatEntry(ent zapcore.Entry, fields []zapcore.Field) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(ent.Level.String()))
	b.WriteString(": ")
	b.WriteString(ent.Message)

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString(fmt.Sprintf("\n%s=%v", k, enc.Fields[k]))
	}
	return b.String()
}
