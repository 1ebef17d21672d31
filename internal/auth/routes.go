package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, ac *Controller, requireAuth gin.HandlerFunc) {
	grp := r.Group("/api/auth")
	{
		grp.POST("/register", ac.Register)
		grp.POST("/login", ac.Login)
		grp.POST("/logout", ac.Logout)
		grp.GET("/me", requireAuth, ac.Me)
	}
}
