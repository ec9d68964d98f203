package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"relief_tracker/internal/config"
	"relief_tracker/internal/middleware"
	"relief_tracker/internal/models"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

// DeliveryFeedHub fans new delivery log records out to the dashboards
// watching each NGO.
type DeliveryFeedHub struct {
	ngoClients map[uint]map[*websocket.Conn]bool
	broadcast  chan deliveryEvent
	mu         sync.Mutex
}

type deliveryEvent struct {
	NGOID   uint
	Payload map[string]interface{}
}

// NewDeliveryFeedHub creates a hub and starts its broadcast loop.
func NewDeliveryFeedHub() *DeliveryFeedHub {
	hub := &DeliveryFeedHub{
		ngoClients: make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan deliveryEvent, 100),
	}
	go hub.run()
	return hub
}

func (h *DeliveryFeedHub) run() {
	for ev := range h.broadcast {
		h.mu.Lock()
		clients := h.ngoClients[ev.NGOID]
		for conn := range clients {
			go func(c *websocket.Conn, ngoID uint, payload map[string]interface{}) {
				if err := c.WriteJSON(payload); err != nil {
					if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
						logrus.WithField("ngo_id", ngoID).Info("Feed client closed during broadcast, unregistering.")
						h.UnregisterClient(ngoID, c)
					} else {
						logrus.WithError(err).WithField("ngo_id", ngoID).Warn("Failed to send delivery event to client.")
					}
				}
			}(conn, ev.NGOID, ev.Payload)
		}
		h.mu.Unlock()
	}
}

// RegisterClient subscribes a connection to one NGO's delivery feed.
func (h *DeliveryFeedHub) RegisterClient(ngoID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ngoClients[ngoID]; !ok {
		h.ngoClients[ngoID] = make(map[*websocket.Conn]bool)
	}
	h.ngoClients[ngoID][conn] = true
	logrus.WithFields(logrus.Fields{
		"ngo_id":   ngoID,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Client registered with DeliveryFeedHub.")
}

// UnregisterClient drops a connection from the feed.
func (h *DeliveryFeedHub) UnregisterClient(ngoID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.ngoClients[ngoID]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.ngoClients, ngoID)
		}
	}
	logrus.WithFields(logrus.Fields{
		"ngo_id":   ngoID,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Client unregistered from DeliveryFeedHub.")
}

// PublishDelivery queues a delivery event for broadcast. The feed is an
// observability surface; when the channel is full the event is dropped,
// never the delivery itself.
func (h *DeliveryFeedHub) PublishDelivery(ngoID uint, payload map[string]interface{}) {
	select {
	case h.broadcast <- deliveryEvent{NGOID: ngoID, Payload: payload}:
	default:
		logrus.Warn("Delivery feed channel full, dropping event.")
	}
}

var deliveryFeed = NewDeliveryFeedHub()

// publishDeliveryLog pushes a freshly created log to the NGO's subscribers.
func publishDeliveryLog(ngoID uint, log *models.ServiceDeliveryLog) {
	payload := map[string]interface{}{
		"delivery_id":     log.ID,
		"service_id":      log.ServiceID,
		"staff_id":        log.StaffID,
		"ngo_id":          ngoID,
		"location":        log.Location,
		"delivery_date":   log.DeliveryDate.Format(time.RFC3339),
		"followup_needed": log.FollowupNeeded,
	}
	if log.EffectivenessRating != nil {
		payload["effectiveness_rating"] = *log.EffectivenessRating
	}
	deliveryFeed.PublishDelivery(ngoID, payload)
}

// authenticateFeedClient validates the JWT passed as a query parameter and
// resolves which NGO's feed the client may watch. Staff accounts are pinned
// to their own NGO; coordinators and admins pick one with ngo_id.
func authenticateFeedClient(c *gin.Context) (uint, error) {
	tokenString := c.Query("token")
	if tokenString == "" {
		return 0, errors.New("missing authentication token")
	}

	token, err := middleware.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)

	switch role {
	case "ngo_staff":
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("invalid token claims")
		}
		var user models.User
		if err := config.DB.First(&user, uint(userIDFloat)).Error; err != nil {
			return 0, fmt.Errorf("user not found: %w", err)
		}
		if user.StaffID == nil {
			return 0, errors.New("account is not linked to a staff record")
		}
		var staff models.NGOStaff
		if err := config.DB.First(&staff, *user.StaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errors.New("staff record not found")
			}
			return 0, err
		}
		return staff.NGOID, nil
	case "coordinator", "admin":
		raw := c.Query("ngo_id")
		if raw == "" {
			return 0, errors.New("missing 'ngo_id' query parameter")
		}
		ngoID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid 'ngo_id' parameter: %w", err)
		}
		return uint(ngoID), nil
	default:
		return 0, errors.New("unauthorized role for feed connection")
	}
}

// HandleDeliveryFeed upgrades the connection and streams delivery events
// for one NGO until the client disconnects.
func HandleDeliveryFeed(c *gin.Context) {
	ngoID, authErr := authenticateFeedClient(c)
	if authErr != nil {
		logrus.WithError(authErr).Warn("Delivery feed connection rejected.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade delivery feed connection.")
		return
	}
	defer conn.Close()

	deliveryFeed.RegisterClient(ngoID, conn)
	defer deliveryFeed.UnregisterClient(ngoID, conn)

	// The feed is one-way; drain reads until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("ngo_id", ngoID).Info("Delivery feed connection closed.")
			} else {
				logrus.WithError(err).WithField("ngo_id", ngoID).Error("Error reading from delivery feed client.")
			}
			return
		}
	}
}
