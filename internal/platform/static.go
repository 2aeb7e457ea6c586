package platform

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LogMessenger is a headless Messenger for local dry runs: every channel
// resolves, sends are written to the process log, and message IDs are
// minted locally. The real gateway adapter replaces it in production.
type LogMessenger struct {
	mu   sync.Mutex
	sent []Message
}

// NewLogMessenger returns a LogMessenger ready for use.
func NewLogMessenger() *LogMessenger {
	return &LogMessenger{}
}

func (m *LogMessenger) FindChannel(name string) (ChannelID, bool) {
	return ChannelID(NormalizeChannelName(name)), true
}

func (m *LogMessenger) ChannelByID(id ChannelID) (ChannelID, bool) {
	return id, true
}

func (m *LogMessenger) Send(ctx context.Context, ch ChannelID, msg Message) (MessageID, error) {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	ev := log.Info().Str("channel", string(ch)).Str("content", msg.Content)
	if msg.Embed != nil {
		ev = ev.Str("embed_title", msg.Embed.Title)
	}
	ev.Msg("message sent")
	return MessageID(uuid.NewString()), nil
}

func (m *LogMessenger) Edit(ctx context.Context, ch ChannelID, id MessageID, msg Message) error {
	log.Info().
		Str("channel", string(ch)).
		Str("message_id", string(id)).
		Msg("message edited")
	return nil
}

// StaticDirectory is an in-memory Directory backed by a fixed member set.
// Used in tests and headless runs.
type StaticDirectory struct {
	members map[string]Member
	byName  map[string]Member
	emojis  map[string]string
}

// NewStaticDirectory indexes the given members by ID and by normalized
// username and display name.
func NewStaticDirectory(members []Member) *StaticDirectory {
	d := &StaticDirectory{
		members: make(map[string]Member, len(members)),
		byName:  make(map[string]Member, len(members)*2),
		emojis:  make(map[string]string),
	}
	for _, m := range members {
		d.members[m.ID] = m
		if k := NormalizeMemberName(m.Username); k != "" {
			d.byName[k] = m
		}
		if k := NormalizeMemberName(m.DisplayName); k != "" {
			d.byName[k] = m
		}
	}
	return d
}

// SetEmoji registers a rendered emoji string under its registry name.
func (d *StaticDirectory) SetEmoji(name, rendered string) {
	d.emojis[name] = rendered
}

func (d *StaticDirectory) Member(id string) (Member, bool) {
	m, ok := d.members[id]
	return m, ok
}

func (d *StaticDirectory) MemberByName(normName string) (Member, bool) {
	m, ok := d.byName[normName]
	return m, ok
}

func (d *StaticDirectory) EmojiString(emojiName string) string {
	return d.emojis[emojiName]
}

func (d *StaticDirectory) RoleMention(roleName string) (string, bool) {
	return "", false
}
