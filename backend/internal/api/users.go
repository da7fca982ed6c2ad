package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventnet/backend/internal/model"
)

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.store.GetAllUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(users))
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		notFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) createUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.AddUser(c.Request.Context(), &user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.announceUser(&user, c.GetString("request_id"))
	c.JSON(http.StatusCreated, created)
}

// announceUser publishes in the background; failures are logged only
func (h *Handler) announceUser(user *model.User, requestID string) {
	if h.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.publisher.PublishUserCreated(ctx, user); err != nil {
			h.log.Warn("User created but not announced",
				zap.Int64("user_id", user.UserID),
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
	}()
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fields, ok := bindRecord(c)
	if !ok {
		return
	}

	user, err := h.store.UpdateUser(c.Request.Context(), id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		notFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	removed, err := h.store.RemoveUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		notFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
