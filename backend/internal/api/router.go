package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventnet/backend/internal/graph"
	"eventnet/backend/internal/model"
)

// Store is the persistence surface the handlers need. *graph.Repository
// satisfies it.
type Store interface {
	TestConnection(ctx context.Context) (string, error)

	AddUser(ctx context.Context, user *model.User) (model.Record, error)
	GetUserByID(ctx context.Context, userID int64) (model.Record, error)
	GetAllUsers(ctx context.Context) ([]model.Record, error)
	UpdateUser(ctx context.Context, userID int64, fields model.Record) (model.Record, error)
	RemoveUser(ctx context.Context, userID int64) (bool, error)

	AddEvent(ctx context.Context, event *model.Event) (model.Record, error)
	GetEventByID(ctx context.Context, eventID int64) (model.Record, error)
	GetAllEvents(ctx context.Context) ([]model.Record, error)
	UpdateEvent(ctx context.Context, eventID int64, fields model.Record) (model.Record, error)
	RemoveEvent(ctx context.Context, eventID int64) (bool, error)

	CreateFriendship(ctx context.Context, fromID, toID int64) (bool, error)
	GetFriends(ctx context.Context, userID int64) ([]model.Record, error)
	GetFriendsOfFriends(ctx context.Context, userID int64) ([]graph.FriendOfFriend, error)
	AttendEvent(ctx context.Context, userID, eventID int64) (bool, error)
	GetAttendedEvents(ctx context.Context, userID int64) ([]model.Record, error)

	BulkLoad(ctx context.Context, users []*model.User, events []*model.Event, relationships []graph.Relationship) (*graph.BulkLoadResult, error)
}

// UserEventPublisher announces new users. May be nil.
type UserEventPublisher interface {
	PublishUserCreated(ctx context.Context, user *model.User) error
}

var _ Store = (*graph.Repository)(nil)

// publishTimeout bounds a background publish after the response is sent
const publishTimeout = 5 * time.Second

// Handler serves the HTTP API
type Handler struct {
	store     Store
	publisher UserEventPublisher
	admins    *model.AdminHolder
	log       *zap.Logger
}

// NewHandler creates a handler. A nil publisher disables notifications; a
// nil admin holder gets a fresh one.
func NewHandler(store Store, publisher UserEventPublisher, admins *model.AdminHolder, log *zap.Logger) *Handler {
	if admins == nil {
		admins = model.NewAdminHolder()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:     store,
		publisher: publisher,
		admins:    admins,
		log:       log,
	}
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(h.log))
	router.Use(recovery(h.log))
	router.Use(cors())

	router.GET("/", h.health)
	router.GET("/health", h.health)
	router.GET("/recommendations", h.recommendations)

	users := router.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)

		users.POST("/:id/friends/:friendID", h.createFriendship)
		users.GET("/:id/friends", h.listFriends)
		users.GET("/:id/friends-of-friends", h.listFriendsOfFriends)

		users.POST("/:id/events/:eventID", h.attendEvent)
		users.GET("/:id/events", h.listAttendedEvents)
	}

	events := router.Group("/events")
	{
		events.GET("", h.listEvents)
		events.POST("", h.createEvent)
		events.GET("/:id", h.getEvent)
		events.PUT("/:id", h.updateEvent)
		events.DELETE("/:id", h.deleteEvent)
	}

	router.POST("/bulk", h.bulkLoad)

	admin := router.Group("/admin")
	{
		admin.GET("", h.getAdmin)
		admin.POST("/review", h.reviewRequest)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return router
}

func (h *Handler) health(c *gin.Context) {
	msg, err := h.store.TestConnection(c.Request.Context())
	if err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": msg})
}

// recommendations returns friends of friends for ?userID=, and a
// placeholder otherwise
func (h *Handler) recommendations(c *gin.Context) {
	raw := c.Query("userID")
	if raw == "" {
		c.String(http.StatusOK, "Recommendations need a userID")
		return
	}
	userID, ok := parseID(c, raw, "userID")
	if !ok {
		return
	}
	h.writeFriendsOfFriends(c, userID)
}
