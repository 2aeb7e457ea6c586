package platform

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// OpsLog mirrors operational warnings into the league's ops channel so
// staff see them without tailing process logs. Delivery is best effort;
// failures degrade to the process log and are never returned to callers.
type OpsLog struct {
	msgr    Messenger
	channel ChannelID
}

// NewOpsLog builds an OpsLog writing to the given channel ID. A zero id
// disables channel delivery and keeps process-log output only.
func NewOpsLog(msgr Messenger, channel ChannelID) *OpsLog {
	return &OpsLog{msgr: msgr, channel: channel}
}

// Warnf logs a formatted warning and mirrors it to the ops channel.
func (o *OpsLog) Warnf(ctx context.Context, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	log.Warn().Msg(text)
	o.send(ctx, text)
}

// Errorf logs a formatted error and mirrors it to the ops channel.
func (o *OpsLog) Errorf(ctx context.Context, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	log.Error().Msg(text)
	o.send(ctx, text)
}

func (o *OpsLog) send(ctx context.Context, text string) {
	if o == nil || o.msgr == nil || o.channel == "" {
		return
	}
	ch, ok := o.msgr.ChannelByID(o.channel)
	if !ok {
		return
	}
	if _, err := o.msgr.Send(ctx, ch, Message{Content: text}); err != nil {
		log.Error().Err(err).Msg("failed to mirror warning to ops channel")
	}
}
