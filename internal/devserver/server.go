// Package devserver is a local stand-in for the real SMS campaign backend.
// It implements the REST contract the SDK consumes so the client can be
// exercised end-to-end without external services. List endpoints answer in
// the legacy {content, totalElements, pageNumber, pageSize} dialect on
// purpose: the SDK's defensive normalization has to cope with it.
package devserver

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sms-campaign-client/internal/config"
)

type Server struct {
	cfg *config.Config
	db  *gorm.DB
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	return &Server{cfg: cfg, db: db}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	r.Use(RateLimit(s.cfg.RateLimit, s.cfg.RateBurst))

	// Identity-provider stand-in and self-registration sit outside auth.
	r.POST("/token", s.HandleToken)

	apiGroup := r.Group("/api")
	apiGroup.POST("/register", s.RegisterTenant)

	authed := apiGroup.Group("")
	authed.Use(s.RequireAuth())
	{
		authed.GET("/contacts", s.ListContacts)
		authed.POST("/contacts", s.CreateContact)
		authed.GET("/contacts/search/by-phone", s.SearchContactsByPhone)
		authed.POST("/contacts/upload-file", s.UploadContacts)
		authed.GET("/contacts/group/:groupId", s.ListContactsByGroup)
		authed.GET("/contacts/:id", s.GetContact)
		authed.PUT("/contacts/:id", s.UpdateContact)
		authed.DELETE("/contacts/:id", s.DeleteContact)

		authed.GET("/contact-groups", s.ListGroups)
		authed.POST("/contact-groups", s.CreateGroup)
		authed.GET("/contact-groups/:id", s.GetGroup)
		authed.PUT("/contact-groups/:id", s.UpdateGroup)
		authed.DELETE("/contact-groups/:id", s.DeleteGroup)

		authed.GET("/senders", s.ListSenders)
		authed.POST("/senders", s.CreateSender)
		authed.GET("/senders/:id", s.GetSender)
		authed.PUT("/senders/:id", s.UpdateSender)
		authed.DELETE("/senders/:id", s.DeleteSender)

		authed.GET("/api-keys", s.ListApiKeys)
		authed.POST("/api-keys", s.CreateApiKey)
		authed.DELETE("/api-keys/:id", s.RevokeApiKey)

		authed.POST("/sms/single", s.SendSingleSms)
		authed.POST("/sms/group", s.SendGroupSms)
		authed.POST("/sms/bulk", s.SendBulkSms)
		authed.GET("/sms/jobs", s.ListSmsJobs)
		authed.GET("/sms/jobs/:id", s.GetSmsJob)

		authed.POST("/payments/initialize", s.InitializePayment)
		authed.GET("/payments/verify/:id", s.VerifyPayment)
		authed.GET("/payments/transactions", s.ListTransactions)
		authed.GET("/payments/transactions/:id", s.GetTransaction)

		authed.GET("/profile", s.GetProfile)
		authed.PUT("/profile", s.UpdateProfile)

		authed.GET("/dashboard", s.DashboardStats)
		authed.GET("/dashboard/admin", s.AdminDashboardStats)
		authed.GET("/dashboard/overview", s.DashboardOverview)

		adminGroup := authed.Group("/admin")
		{
			adminGroup.GET("/tenants", s.ListTenants)
			adminGroup.GET("/tenants/:id", s.GetTenant)
			adminGroup.GET("/senders/pending", s.ListPendingSenders)
			adminGroup.POST("/senders/:id/approve", s.ApproveSender)
			adminGroup.GET("/sms-jobs/pending", s.ListPendingSmsJobs)
			adminGroup.POST("/sms-jobs/:id/approve", s.ApproveSmsJob)
			adminGroup.GET("/sms-packages", s.ListSmsPackages)
			adminGroup.POST("/sms-packages", s.CreateSmsPackage)
			adminGroup.PUT("/sms-packages/:id", s.UpdateSmsPackage)
			adminGroup.DELETE("/sms-packages/:id", s.DeleteSmsPackage)
		}
	}

	return r
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size <= 0 {
		size = 20
	}
	return page, size
}

// legacyPage wraps a listing in the old backend's envelope.
func legacyPage(items any, total int64, page, size int) gin.H {
	return gin.H{
		"content":       items,
		"totalElements": total,
		"pageNumber":    page,
		"pageSize":      size,
	}
}
