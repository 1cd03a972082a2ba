package api

import (
	"net/http"
	"strconv"

	"messenger-backend/internal/middleware"
	"messenger-backend/internal/models"
	"messenger-backend/internal/presence"
	"messenger-backend/internal/repository"
	"messenger-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	storage  *storage.LocalStorage
	presence *presence.Store
	log      *zap.SugaredLogger
}

func NewChatHandler(
	messages repository.MessageRepository,
	users repository.UserRepository,
	store *storage.LocalStorage,
	pres *presence.Store,
	log *zap.SugaredLogger,
) *ChatHandler {
	return &ChatHandler{
		messages: messages,
		users:    users,
		storage:  store,
		presence: pres,
		log:      log,
	}
}

// SendMessage inserts one message authored by the authenticated identity.
// The body is polymorphic: text content, or base64 audio that is decoded
// and persisted as a blob under a generated name.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Receiver is required"})
		return
	}

	payload, err := req.Payload()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	senderID := middleware.CurrentUserID(c)
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
	}

	var audioFilename string
	switch p := payload.(type) {
	case models.AudioPayload:
		filename, err := h.storage.SaveAudio(p.Data)
		if err != nil {
			h.log.Errorw("failed to save audio blob", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to save audio"})
			return
		}
		audioFilename = filename
		msg.Content = filename
		msg.MessageType = models.MessageTypeAudio
	case models.TextPayload:
		msg.Content = p.Content
		msg.MessageType = p.Type
	}

	if err := h.messages.Insert(c.Request.Context(), &msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to send message"})
		return
	}

	resp := gin.H{
		"status":       "success",
		"message":      "Message sent.",
		"message_id":   msg.ID,
		"message_type": msg.MessageType,
	}
	if audioFilename != "" {
		resp["audio_filename"] = audioFilename
	}
	c.JSON(http.StatusCreated, resp)
}

// GetMessages returns the conversation between userA and userB ascending.
// The caller must be one of the two. After a successful read, messages
// addressed to the caller from the other party are marked read.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userA, errA := strconv.ParseInt(c.Query("userA"), 10, 64)
	userB, errB := strconv.ParseInt(c.Query("userB"), 10, 64)
	if errA != nil || errB != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "userA and userB parameters are required"})
		return
	}

	userID := middleware.CurrentUserID(c)
	if userID != userA && userID != userB {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Not a participant of this conversation"})
		return
	}

	ctx := c.Request.Context()
	messages, err := h.messages.Conversation(ctx, userA, userB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch messages"})
		return
	}

	// Read receipt on view: flip unread messages from the counterpart.
	other := userA
	if userID == userA {
		other = userB
	}
	if err := h.messages.MarkRead(ctx, userID, other); err != nil {
		h.log.Errorw("failed to mark messages read", "error", err)
	}

	if h.presence != nil {
		_ = h.presence.Touch(ctx, userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Messages retrieved.",
		"messages": messages,
	})
}

// DeleteMessage removes a message, allowed only for its sender.
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message id"})
		return
	}

	userID := middleware.CurrentUserID(c)
	deleted, err := h.messages.Delete(c.Request.Context(), messageID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete message"})
		return
	}
	if !deleted {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Message not found or not yours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message deleted."})
}

// GetContacts lists everyone except the caller, with unread counts and the
// last exchanged message for the contact list screen.
func (h *ChatHandler) GetContacts(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	users, err := h.users.ListExcept(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch contacts"})
		return
	}

	contacts := make([]models.Contact, 0, len(users))
	for _, user := range users {
		contact := models.Contact{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			Status:         user.Status,
			LastSeen:       user.LastSeen,
		}

		if h.presence != nil {
			if entry, err := h.presence.Get(ctx, user.ID); err == nil && entry != nil {
				contact.Status = entry.Status
			}
		}

		unread, err := h.messages.UnreadFrom(ctx, user.ID, userID)
		if err == nil {
			contact.UnreadCount = unread
		}

		last, err := h.messages.LastMessage(ctx, user.ID, userID)
		if err == nil && last != nil {
			contact.LastMessage = last
		}

		contacts = append(contacts, contact)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Contacts retrieved.",
		"contacts": contacts,
	})
}

// GetUnreadCount returns the caller's total unread count for the badge.
func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	count, err := h.messages.UnreadTotal(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch unread count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "count": count})
}
