package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

type sentNote struct {
	recipient string
	text      string
}

// fakeSender records messages instead of calling the Telegram API.
type fakeSender struct {
	sent []sentNote
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.sent = append(f.sent, sentNote{recipient: to.Recipient(), text: what.(string)})
	return &tele.Message{}, nil
}

func TestCore_ForwardsWarnAndAbove(t *testing.T) {
	sender := &fakeSender{}
	logger := zap.New(NewCore(sender, 777, zapcore.WarnLevel))

	logger.Info("not forwarded")
	logger.Warn("something looks off")
	logger.Error("handler failed", zap.String("user_id", "42"), zap.Error(assert.AnError))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "777", sender.sent[0].recipient)
	assert.Equal(t, "WARN: something looks off", sender.sent[0].text)

	assert.Contains(t, sender.sent[1].text, "ERROR: handler failed")
	assert.Contains(t, sender.sent[1].text, "user_id=42")
	assert.Contains(t, sender.sent[1].text, "error=")
}

func TestCore_With(t *testing.T) {
	sender := &fakeSender{}
	logger := zap.New(NewCore(sender, 777, zapcore.WarnLevel)).With(zap.String("transport", "vk"))

	logger.Warn("poll failed")

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].text, "transport=vk")
}
