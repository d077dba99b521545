package app

import (
	"time"

	"github.com/Munnjee/Comp2537-A01/internal/auth"
	"github.com/Munnjee/Comp2537-A01/internal/handlers"
	"github.com/Munnjee/Comp2537-A01/internal/repo"
	"github.com/Munnjee/Comp2537-A01/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps carries everything route setup needs, so tests can swap in fakes.
type Deps struct {
	Users      repo.UserRepo
	Sessions   *auth.Store
	Codec      auth.CookieCodec
	TTL        time.Duration
	BcryptCost int
	PublicDir  string
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, d Deps) {
	userSvc := service.NewUserService(d.Users, d.BcryptCost)
	authHandler := handlers.NewAuthHandler(userSvc, d.Sessions, d.Codec, d.TTL)
	webHandler := handlers.NewWebHandler(userSvc, d.PublicDir)

	r.Use(auth.LoadSession(d.Sessions, d.Codec))

	r.GET("/", webHandler.Home)
	r.GET("/health", webHandler.Health)
	r.GET("/signup", authHandler.SignupPage)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/submitUser", authHandler.SubmitUser)
	r.POST("/loggingin", authHandler.LoggingIn)
	r.GET("/loggedin", authHandler.LoggedIn)
	r.GET("/logout", authHandler.Logout)
	r.GET("/nosql-injection", webHandler.Injection)
	r.GET("/image/:id", webHandler.Image)
	r.GET("/members", auth.RequireMember(), webHandler.Members)

	r.NoRoute(webHandler.NotFound)
}
