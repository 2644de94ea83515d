package controllers

import (
	"travel-app/services"
	"travel-app/services/logger"
	"travel-app/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSController phục vụ kênh websocket /ws, mỗi user chỉ nhận thông báo của mình
type WSController struct {
	melody *melody.Melody
	users  services.UserStore
	logger logger.Logger
}

func NewWSController(m *melody.Melody, users services.UserStore, log logger.Logger) *WSController {
	ctl := &WSController{melody: m, users: users, logger: log}
	m.HandleConnect(func(s *melody.Session) {
		ctl.logger.Debug("ws client connected: %s", s.Request.RemoteAddr)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		ctl.logger.Debug("ws client disconnected: %s", s.Request.RemoteAddr)
	})
	return ctl
}

func (ctl *WSController) HandleWS(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := ctl.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	keys := map[string]interface{}{
		notification.SessionUserKey:  user.ID,
		notification.SessionEmailKey: user.Email,
	}
	if err := ctl.melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		ctl.logger.Error("ws upgrade failed: %v", err)
	}
}
