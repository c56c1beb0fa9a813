package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limitLogins := limitRateForLogin(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", limitLogins, s.handleLogin())
	apirouter.GET("/loads", s.handleSearchLoads())
	apirouter.GET("/loads/:loadID", s.handleGetLoad())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me", s.handleEditUserProfile())

	authorized.POST("/loads", s.handleCreateLoad())
	authorized.PUT("/loads/:loadID", s.handleUpdateLoad())
	authorized.DELETE("/loads/:loadID", s.handleDeleteLoad())
	authorized.GET("/me/loads", s.handleGetMyLoads())

	authorized.POST("/trucks", s.handleCreateTruck())
	authorized.GET("/trucks", s.handleGetAvailableTrucks())
	authorized.PUT("/trucks/:truckID", s.handleUpdateTruck())
	authorized.DELETE("/trucks/:truckID", s.handleDeleteTruck())
	authorized.GET("/me/trucks", s.handleGetMyTrucks())

	authorized.POST("/loads/:loadID/apply", s.handleApplyToLoad())
	authorized.GET("/loads/:loadID/applications", s.handleGetLoadApplications())
	authorized.GET("/me/applications", s.handleGetMyApplications())
	authorized.PUT("/applications/:applicationID/accept", s.handleAcceptApplication())
	authorized.PUT("/applications/:applicationID/reject", s.handleRejectApplication())

	authorized.POST("/reviews", s.handleCreateReview())
	authorized.GET("/users/:userID/reviews", s.handleGetUserReviews())

	authorized.POST("/messages/send", s.handleSendMessage())
	authorized.GET("/messages/:otherID", s.handleGetConversation())

	authorized.GET("/ws", s.handleWS())

	admin := authorized.Group("/admin")
	admin.Use(s.RequireAdmin())
	admin.GET("/users", s.handleGetAllUsers())
	admin.GET("/users/pending", s.handleGetPendingUsers())
	admin.PUT("/users/:userID/approve", s.handleApproveUser())
}
