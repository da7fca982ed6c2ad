package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventnet/backend/internal/graph"
	"eventnet/backend/internal/model"
)

// createFriendship answers 404 when either user is missing
func (h *Handler) createFriendship(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	friendID, ok := paramID(c, "friendID")
	if !ok {
		return
	}

	created, err := h.store.CreateFriendship(c.Request.Context(), id, friendID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !created {
		notFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": true})
}

func (h *Handler) listFriends(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	friends, err := h.store.GetFriends(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(friends))
}

func (h *Handler) listFriendsOfFriends(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.writeFriendsOfFriends(c, id)
}

func (h *Handler) writeFriendsOfFriends(c *gin.Context, userID int64) {
	fofs, err := h.store.GetFriendsOfFriends(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(fofs))
}

// attendEvent answers 404 when the user or the event is missing
func (h *Handler) attendEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	eventID, ok := paramID(c, "eventID")
	if !ok {
		return
	}

	created, err := h.store.AttendEvent(c.Request.Context(), id, eventID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !created {
		notFound(c, "User or event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": true})
}

func (h *Handler) listAttendedEvents(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	events, err := h.store.GetAttendedEvents(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(events))
}

type bulkRequest struct {
	Users         []*model.User        `json:"users"`
	Events        []*model.Event       `json:"events"`
	Relationships []graph.Relationship `json:"relationships" binding:"dive"`
}

func (h *Handler) bulkLoad(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.store.BulkLoad(c.Request.Context(), req.Users, req.Events, req.Relationships)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
