package models

import (
	"encoding/base64"
	"testing"
)

func TestPayloadTextDefaultsToTextType(t *testing.T) {
	req := SendMessageRequest{ReceiverID: 2, Content: "hello"}
	p, err := req.Payload()
	if err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	text, ok := p.(TextPayload)
	if !ok {
		t.Fatalf("expected TextPayload, got %T", p)
	}
	if text.Content != "hello" || text.MessageType() != MessageTypeText {
		t.Fatalf("unexpected payload: %+v", text)
	}
}

func TestPayloadTrimsWhitespace(t *testing.T) {
	req := SendMessageRequest{ReceiverID: 2, Content: "  hi  "}
	p, err := req.Payload()
	if err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	if p.(TextPayload).Content != "hi" {
		t.Fatalf("content not trimmed: %q", p.(TextPayload).Content)
	}
}

func TestPayloadKeepsContentVerbatim(t *testing.T) {
	content := `<b>it's "quoted" & special</b>`
	req := SendMessageRequest{ReceiverID: 2, Content: content}
	p, err := req.Payload()
	if err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	if p.(TextPayload).Content != content {
		t.Fatalf("content altered: %q", p.(TextPayload).Content)
	}
}

func TestPayloadEmptyContentRejected(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		req := SendMessageRequest{ReceiverID: 2, Content: content}
		if _, err := req.Payload(); err != ErrEmptyPayload {
			t.Errorf("content %q: expected ErrEmptyPayload, got %v", content, err)
		}
	}
}

func TestPayloadRejectsUnknownType(t *testing.T) {
	req := SendMessageRequest{ReceiverID: 2, Content: "x", MessageType: "video"}
	if _, err := req.Payload(); err != ErrBadType {
		t.Fatalf("expected ErrBadType, got %v", err)
	}
}

func TestPayloadAudio(t *testing.T) {
	raw := []byte{0x00, 0x01, 0x02, 0xff}
	req := SendMessageRequest{ReceiverID: 2, AudioData: base64.StdEncoding.EncodeToString(raw)}
	p, err := req.Payload()
	if err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	audio, ok := p.(AudioPayload)
	if !ok {
		t.Fatalf("expected AudioPayload, got %T", p)
	}
	if string(audio.Data) != string(raw) {
		t.Fatalf("audio bytes altered: %v", audio.Data)
	}
	if audio.MessageType() != MessageTypeAudio {
		t.Fatalf("wrong type: %s", audio.MessageType())
	}
}

func TestPayloadAudioWinsOverText(t *testing.T) {
	req := SendMessageRequest{
		ReceiverID: 2,
		Content:    "caption",
		AudioData:  base64.StdEncoding.EncodeToString([]byte("aud")),
	}
	p, err := req.Payload()
	if err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	if _, ok := p.(AudioPayload); !ok {
		t.Fatalf("expected AudioPayload when both forms present, got %T", p)
	}
}

func TestPayloadBadBase64(t *testing.T) {
	req := SendMessageRequest{ReceiverID: 2, AudioData: "%%%not-base64%%%"}
	if _, err := req.Payload(); err != ErrBadAudioData {
		t.Fatalf("expected ErrBadAudioData, got %v", err)
	}
}
