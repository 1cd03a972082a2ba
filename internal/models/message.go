package models

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

const (
	MessageTypeText  = "text"
	MessageTypeFile  = "file"
	MessageTypeImage = "image"
	MessageTypeAudio = "audio"
)

// Message is one unit of conversation content. SenderName and SenderPicture
// are joined from the users table at read time, not stored on the row.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"sender_id" db:"sender_id"`
	ReceiverID  int64     `json:"receiver_id" db:"receiver_id"`
	Content     string    `json:"content" db:"content"`
	MessageType string    `json:"message_type" db:"message_type"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	SenderName    string `json:"sender_name,omitempty"`
	SenderPicture string `json:"sender_picture,omitempty"`
}

// SendMessageRequest is the wire shape of a send. Exactly one of the two
// payload forms must be present: text content, or base64 audio data.
type SendMessageRequest struct {
	ReceiverID  int64  `json:"receiver_id" binding:"required"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	AudioData   string `json:"audio_data"`
}

var (
	ErrEmptyPayload = errors.New("message must have content or audio data")
	ErrBadAudioData = errors.New("audio data is not valid base64")
	ErrBadType      = errors.New("unknown message type")
)

// OutgoingPayload is the decoded form of a send request, one variant per
// message type so handlers switch on the concrete type instead of strings.
type OutgoingPayload interface {
	MessageType() string
}

type TextPayload struct {
	Content string
	Type    string
}

func (p TextPayload) MessageType() string { return p.Type }

type AudioPayload struct {
	Data []byte
}

func (p AudioPayload) MessageType() string { return MessageTypeAudio }

func validType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypeFile, MessageTypeImage:
		return true
	}
	return false
}

// Payload decodes the polymorphic request body into its variant. Audio wins
// when both forms are present, matching how clients populate the body.
func (r *SendMessageRequest) Payload() (OutgoingPayload, error) {
	if r.AudioData != "" {
		data, err := base64.StdEncoding.DecodeString(r.AudioData)
		if err != nil {
			return nil, ErrBadAudioData
		}
		if len(data) == 0 {
			return nil, ErrEmptyPayload
		}
		return AudioPayload{Data: data}, nil
	}

	content := strings.TrimSpace(r.Content)
	if content == "" {
		return nil, ErrEmptyPayload
	}

	msgType := r.MessageType
	if msgType == "" {
		msgType = MessageTypeText
	}
	if !validType(msgType) {
		return nil, ErrBadType
	}

	return TextPayload{Content: content, Type: msgType}, nil
}
