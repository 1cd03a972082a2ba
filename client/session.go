package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Message is the wire shape of one conversation entry as returned by the
// messages endpoint.
type Message struct {
	ID            int64     `json:"id"`
	SenderID      int64     `json:"sender_id"`
	ReceiverID    int64     `json:"receiver_id"`
	Content       string    `json:"content"`
	MessageType   string    `json:"message_type"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
	SenderName    string    `json:"sender_name,omitempty"`
	SenderPicture string    `json:"sender_picture,omitempty"`
}

// User is a directory entry.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture"`
	Status         string    `json:"status"`
	LastSeen       time.Time `json:"last_seen"`
}

// SendResult is the server's acknowledgement of a send.
type SendResult struct {
	MessageID     int64  `json:"message_id"`
	MessageType   string `json:"message_type"`
	AudioFilename string `json:"audio_filename,omitempty"`
}

type envelope struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	Token         string          `json:"token"`
	User          *User           `json:"user,omitempty"`
	Users         []User          `json:"users,omitempty"`
	Messages      []Message       `json:"messages,omitempty"`
	MessageID     int64           `json:"message_id,omitempty"`
	MessageType   string          `json:"message_type,omitempty"`
	AudioFilename string          `json:"audio_filename,omitempty"`
	Raw           json.RawMessage `json:"-"`
}

// Session is an explicit, lifecycle-scoped API session. The bearer token
// lives here rather than in process-wide state; every network operation is
// a method on the session it belongs to.
type Session struct {
	BaseURL    string
	HTTPClient *http.Client

	// UseQueryToken sends the credential as a token query parameter
	// instead of the Authorization header, for HTTP stacks that strip
	// custom headers. The server treats both transports identically.
	UseQueryToken bool

	token  string
	selfID int64
	email  string
	name   string
}

func NewSession(baseURL string) *Session {
	return &Session{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs a previously issued credential, e.g. one restored from
// a device keystore.
func (s *Session) SetToken(token string, selfID int64) {
	s.token = token
	s.selfID = selfID
}

func (s *Session) SelfID() int64 { return s.selfID }
func (s *Session) Name() string  { return s.name }

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	u := s.BaseURL + path
	if query == nil {
		query = url.Values{}
	}
	if s.token != "" && s.UseQueryToken {
		query.Set("token", s.token)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" && !s.UseQueryToken {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	env.Raw = raw

	if resp.StatusCode >= 400 || env.Status == "error" {
		return nil, classify(resp.StatusCode, env.Message)
	}
	return &env, nil
}

func classify(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusBadRequest:
		return &ValidationError{Message: message}
	default:
		return &StorageError{StatusCode: status, Message: message}
	}
}

// Login authenticates and binds the issued token to this session.
func (s *Session) Login(ctx context.Context, email, password string) error {
	env, err := s.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	s.token = env.Token
	if env.User != nil {
		s.selfID = env.User.ID
		s.email = env.User.Email
		s.name = env.User.Name
	}
	return nil
}

// Register creates an account and binds the issued token to this session.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	env, err := s.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	s.token = env.Token
	if env.User != nil {
		s.selfID = env.User.ID
		s.email = env.User.Email
		s.name = env.User.Name
	}
	return nil
}

// Logout revokes the session server-side and clears the local credential.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	s.token = ""
	return err
}

// Users fetches the contact directory (everyone except the caller).
func (s *Session) Users(ctx context.Context) ([]User, error) {
	env, err := s.do(ctx, http.MethodGet, "/api/v1/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Users, nil
}

// SendMessage posts one text message to the receiver.
func (s *Session) SendMessage(ctx context.Context, receiverID int64, content string) (*SendResult, error) {
	env, err := s.do(ctx, http.MethodPost, "/api/v1/chat/messages", nil, map[string]interface{}{
		"receiver_id": receiverID,
		"content":     content,
	})
	if err != nil {
		return nil, err
	}
	return &SendResult{MessageID: env.MessageID, MessageType: env.MessageType}, nil
}

// SendAudio posts one voice message; data is the raw recording, encoded for
// transport here.
func (s *Session) SendAudio(ctx context.Context, receiverID int64, data []byte) (*SendResult, error) {
	env, err := s.do(ctx, http.MethodPost, "/api/v1/chat/messages", nil, map[string]interface{}{
		"receiver_id": receiverID,
		"audio_data":  encodeBase64(data),
	})
	if err != nil {
		return nil, err
	}
	return &SendResult{
		MessageID:     env.MessageID,
		MessageType:   env.MessageType,
		AudioFilename: env.AudioFilename,
	}, nil
}

// ListConversation fetches the full ordered conversation between two users.
// Viewing has the server-side side effect of marking messages addressed to
// the caller as read.
func (s *Session) ListConversation(ctx context.Context, userA, userB int64) ([]Message, error) {
	q := url.Values{}
	q.Set("userA", fmt.Sprintf("%d", userA))
	q.Set("userB", fmt.Sprintf("%d", userB))
	env, err := s.do(ctx, http.MethodGet, "/api/v1/chat/messages", q, nil)
	if err != nil {
		return nil, err
	}
	return env.Messages, nil
}

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DeleteMessage removes one of the caller's own messages.
func (s *Session) DeleteMessage(ctx context.Context, messageID int64) error {
	_, err := s.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/chat/messages/%d", messageID), nil, nil)
	return err
}
