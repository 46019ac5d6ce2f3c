package routes

import (
	"Connect4/controllers"
	"Connect4/middleware"
	utils "Connect4/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, accounts controllers.Accounts, matches controllers.Matches, jwtManager *middleware.JWTManager) {
	// utils global
	router.Use(utils.Logger(), utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(accounts, jwtManager))

	api.POST("/signup", controllers.SignUp(accounts))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired(jwtManager))
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetMe(accounts))

		authentication.GET("/friends", controllers.ListFriends(accounts))

		authentication.POST("/friends", controllers.AddFriend(accounts))

		authentication.GET("/stats/:username", controllers.GetStats(accounts))

		authentication.GET("/chats/:friend", controllers.GetChatHistory(accounts))

		authentication.GET("/matches", controllers.ListMatches(accounts))

		authentication.GET("/matches/:id", controllers.GetMatch(matches))

		authentication.POST("/matches/:id/moves", controllers.AddMove(matches))

		authentication.POST("/matches/:id/forfeit", controllers.ForfeitMatch(matches))

		authentication.POST("/matches/:id/observers", controllers.JoinObservers(matches))

		authentication.DELETE("/matches/:id/observers", controllers.LeaveObservers(matches))
	}
}
