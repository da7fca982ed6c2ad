package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventnet/backend/internal/model"
)

func (h *Handler) listEvents(c *gin.Context) {
	events, err := h.store.GetAllEvents(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(events))
}

func (h *Handler) getEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	event, err := h.store.GetEventByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if event == nil {
		notFound(c, "Event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) createEvent(c *gin.Context) {
	var event model.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.AddEvent(c.Request.Context(), &event)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fields, ok := bindRecord(c)
	if !ok {
		return
	}

	event, err := h.store.UpdateEvent(c.Request.Context(), id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if event == nil {
		notFound(c, "Event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	removed, err := h.store.RemoveEvent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		notFound(c, "Event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
