package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venture_web/internal/api/handlers"
	"venture_web/internal/middleware"
	"venture_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	authHandler := handlers.NewAuthHandler(services.User)
	offerHandler := handlers.NewOfferHandler(services.Negotiation)
	roundHandler := handlers.NewFundingRoundHandler(services.FundingRound)
	roomHandler := handlers.NewPitchRoomHandler(services.PitchRoom)
	wsHandler := handlers.NewWebSocketHandler(services.PitchRoom)

	api := r.Group("/api")

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	// Public routes
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Socket identity rides on query parameters, not the bearer token,
		// so the websocket route sits outside the authorized group.
		api.GET("/pitch-rooms/:id/ws", wsHandler.HandleWebSocket)
	}

	// Authenticated routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		rounds := authorized.Group("/funding-rounds")
		{
			rounds.POST("", roundHandler.CreateRound)
			rounds.GET("/:id", roundHandler.GetRound)
			rounds.POST("/:id/close", roundHandler.CloseRound)

			rounds.POST("/:id/offers/:investorId/interest", offerHandler.ExpressInterest)
			rounds.POST("/:id/offers/:investorId", offerHandler.SubmitOffer)
			rounds.POST("/:id/offers/:investorId/accept", offerHandler.AcceptOffer)
			rounds.POST("/:id/offers/:investorId/counter", offerHandler.CounterOffer)
			rounds.POST("/:id/offers/:investorId/reject", offerHandler.RejectOffer)
		}

		authorized.GET("/startups/:id/funding-round", roundHandler.GetCurrentRound)
		authorized.GET("/startups/:id/cap-table", roundHandler.GetCapTable)

		authorized.GET("/pitch-rooms", roomHandler.ListRooms)
		authorized.GET("/pitch-rooms/:id", roomHandler.GetRoom)
	}
}
