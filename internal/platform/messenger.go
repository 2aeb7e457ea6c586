// Package platform defines the seam between league logic and whatever
// chat gateway hosts the bot. Domain packages speak these interfaces;
// the gateway adapter (kept out of this module) implements them.
package platform

import (
	"context"
	"time"
)

// ChannelID identifies a text channel on the hosting platform.
type ChannelID string

// MessageID identifies a posted message on the hosting platform.
type MessageID string

// EmbedField is one labeled section of an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a platform-agnostic rich message body.
type Embed struct {
	Title       string
	Description string
	Color       int
	Thumbnail   string
	Footer      string
	FooterIcon  string
	Fields      []EmbedField
	Timestamp   time.Time
}

// Attachment is a file carried alongside a message.
type Attachment struct {
	Name string
	Data []byte
}

// Message is the unit handed to a Messenger for delivery.
type Message struct {
	Content string
	Embed   *Embed
	Files   []Attachment
}

// Messenger sends and edits messages through the chat gateway. FindChannel
// matches channel names fuzzily so renamed or emoji-decorated channels
// still resolve.
type Messenger interface {
	FindChannel(name string) (ChannelID, bool)
	ChannelByID(id ChannelID) (ChannelID, bool)
	Send(ctx context.Context, ch ChannelID, msg Message) (MessageID, error)
	Edit(ctx context.Context, ch ChannelID, id MessageID, msg Message) error
}

// Member is a guild member as seen by the bot.
type Member struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
	Roles       []string
}

// Directory exposes guild membership to league logic. MemberByName is
// keyed by a normalized username (see NormalizeMemberName).
type Directory interface {
	Member(id string) (Member, bool)
	MemberByName(normName string) (Member, bool)
	EmojiString(emojiName string) string
	RoleMention(roleName string) (string, bool)
}
