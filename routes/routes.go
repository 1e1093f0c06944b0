package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/ws"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up every route group. The
// notification hub is passed down explicitly; no handler reaches for shared
// global state.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *ws.Hub) {
	SetupAuthRoutes(r, db)
	SetupProductRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupOrderRoutes(r, db, hub)
	SetupUserRoutes(r, db)
	SetupAdminRoutes(r, db, hub)

	// websocket endpoint for real-time stock and order events
	r.GET("/ws", ws.ServeWS(hub))
}
