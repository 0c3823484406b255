package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"edquiz-service/internal/app"
)

// NewRouter assembles the REST and websocket surface.
func NewRouter(
	accounts *app.AccountService,
	quiz *app.QuizService,
	dashboard *app.DashboardService,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := NewAuthHandler(accounts)
	quizHandler := NewQuizHandler(quiz)
	dashboardHandler := NewDashboardHandler(dashboard)
	wsHandler := NewWSHandler(quiz, accounts)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/signout", authHandler.SignOut)
	auth.POST("/reset-password", authHandler.ResetPassword)

	api.GET("/subjects", quizHandler.Subjects)

	quizzes := api.Group("/quizzes", OptionalAuth(accounts))
	quizzes.POST("", quizHandler.Start)
	quizzes.GET("/:id", quizHandler.Session)
	quizzes.POST("/:id/answer", quizHandler.Answer)
	quizzes.POST("/:id/next", quizHandler.Next)
	quizzes.POST("/:id/prev", quizHandler.Prev)
	quizzes.POST("/:id/finish", quizHandler.Finish)

	api.GET("/leaderboard", dashboardHandler.Leaderboard)

	private := api.Group("", RequireAuth(accounts))
	private.GET("/dashboard", dashboardHandler.Overview)
	private.GET("/history", dashboardHandler.History)
	private.GET("/achievements", dashboardHandler.Achievements)
	private.PUT("/settings", authHandler.UpdateSettings)

	router.GET("/ws", gin.WrapF(wsHandler.ServeWS))

	return router
}
