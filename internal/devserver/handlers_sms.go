package devserver

import (
	"bufio"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The stub "delivers" instantly: every accepted job completes with all
// recipients marked successful unless it needs approval first.

const approvalThreshold = 100

func newJob(senderID, message string, recipients int64, scheduledAt *time.Time) SmsJob {
	job := SmsJob{
		ID:              uuid.NewString(),
		SenderID:        senderID,
		Message:         message,
		TotalRecipients: recipients,
		ScheduledAt:     scheduledAt,
	}
	if recipients > approvalThreshold {
		job.Status = "PENDING"
		job.ApprovalStatus = "PENDING_APPROVAL"
	} else {
		job.Status = "COMPLETED"
		job.ApprovalStatus = "APPROVED"
		job.SuccessCount = recipients
	}
	return job
}

type sendSingleRequest struct {
	SenderID    string     `json:"senderId" binding:"required"`
	To          string     `json:"to" binding:"required"`
	Message     string     `json:"message" binding:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (s *Server) SendSingleSms(c *gin.Context) {
	var req sendSingleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := newJob(req.SenderID, req.Message, 1, req.ScheduledAt)
	if err := s.db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

type sendGroupRequest struct {
	SenderID    string     `json:"senderId" binding:"required"`
	GroupID     string     `json:"groupId" binding:"required"`
	Message     string     `json:"message" binding:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (s *Server) SendGroupSms(c *gin.Context) {
	var req sendGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recipients int64
	s.db.Model(&Contact{}).Where("group_id = ?", req.GroupID).Count(&recipients)
	if recipients == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group has no contacts"})
		return
	}

	job := newJob(req.SenderID, req.Message, recipients, req.ScheduledAt)
	if err := s.db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (s *Server) SendBulkSms(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	senderID := c.PostForm("senderId")
	message := c.PostForm("message")
	if senderID == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "senderId and message are required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	var recipients int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			recipients++
		}
	}
	if recipients == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File contains no recipients"})
		return
	}

	job := newJob(senderID, message, recipients, nil)
	if err := s.db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (s *Server) ListSmsJobs(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&SmsJob{}).Count(&total)

	jobs := []SmsJob{}
	err := s.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&jobs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(jobs, total, page, size))
}

func (s *Server) GetSmsJob(c *gin.Context) {
	var job SmsJob
	if err := s.db.First(&job, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// --- Payments ---

type initializePaymentRequest struct {
	PackageID string  `json:"packageId"`
	Amount    float64 `json:"amount"`
}

func (s *Server) InitializePayment(c *gin.Context) {
	var req initializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := Transaction{
		ID:            uuid.NewString(),
		PaymentStatus: "IN_PROGRESS",
		SmsPackageID:  req.PackageID,
		AmountPaid:    req.Amount,
	}
	if req.PackageID != "" {
		var pkg SmsPackage
		if err := s.db.First(&pkg, "id = ?", req.PackageID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		tx.AmountPaid = pkg.Price
		tx.SmsCredited = pkg.SmsCount
	}
	if err := s.db.Create(&tx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactionId":    tx.ID,
		"authorizationUrl": "http://localhost:" + s.cfg.Port + "/pay/" + tx.ID,
		"reference":        tx.ID,
	})
}

// VerifyPayment settles the transaction; the stub always succeeds.
func (s *Server) VerifyPayment(c *gin.Context) {
	var tx Transaction
	if err := s.db.First(&tx, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if tx.PaymentStatus == "IN_PROGRESS" {
		tx.PaymentStatus = "SUCCESSFUL"
		if err := s.db.Save(&tx).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
	}
	c.JSON(http.StatusOK, tx)
}

func (s *Server) ListTransactions(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&Transaction{}).Count(&total)

	txs := []Transaction{}
	err := s.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&txs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(txs, total, page, size))
}

func (s *Server) GetTransaction(c *gin.Context) {
	var tx Transaction
	if err := s.db.First(&tx, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

// --- Profile ---

func (s *Server) devProfile() Profile {
	var profile Profile
	if err := s.db.First(&profile, "tenant_id = ?", devTenantID).Error; err != nil {
		profile = Profile{
			ID:        uuid.NewString(),
			Email:     "dev@example.com",
			FirstName: "Dev",
			LastName:  "User",
			Username:  "dev",
			TenantID:  devTenantID,
		}
		s.db.Create(&profile)
	}
	return profile
}

func (s *Server) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.devProfile())
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfile honors only firstName and lastName, whatever else arrives.
func (s *Server) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := s.devProfile()
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	if err := s.db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// --- Dashboard ---

func (s *Server) dashboardStats() gin.H {
	var contacts, groups, sent, failed, pendingSenders, pendingJobs, tenants int64
	s.db.Model(&Contact{}).Count(&contacts)
	s.db.Model(&ContactGroup{}).Count(&groups)
	s.db.Model(&SmsJob{}).Select("COALESCE(SUM(success_count),0)").Scan(&sent)
	s.db.Model(&SmsJob{}).Select("COALESCE(SUM(failure_count),0)").Scan(&failed)
	s.db.Model(&Sender{}).Where("status = ?", "PENDING_VERIFICATION").Count(&pendingSenders)
	s.db.Model(&SmsJob{}).Where("approval_status = ?", "PENDING_APPROVAL").Count(&pendingJobs)
	s.db.Model(&Tenant{}).Count(&tenants)

	return gin.H{
		"totalContacts":  contacts,
		"totalGroups":    groups,
		"totalSent":      sent,
		"totalFailed":    failed,
		"smsCredit":      s.devProfile().SmsCredit,
		"pendingSenders": pendingSenders,
		"pendingJobs":    pendingJobs,
		"totalTenants":   tenants,
	}
}

func (s *Server) DashboardStats(c *gin.Context)      { c.JSON(http.StatusOK, s.dashboardStats()) }
func (s *Server) AdminDashboardStats(c *gin.Context) { c.JSON(http.StatusOK, s.dashboardStats()) }
func (s *Server) DashboardOverview(c *gin.Context)   { c.JSON(http.StatusOK, s.dashboardStats()) }

// --- Registration ---

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (s *Server) RegisterTenant(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	s.db.Model(&Tenant{}).Where("email = ?", req.Email).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusOK, gin.H{"status": "Tenant already registered"})
		return
	}

	tenant := Tenant{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Email:                req.Email,
		Status:               "ACTIVE",
		SmsApprovalThreshold: approvalThreshold,
	}
	if err := s.db.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register tenant"})
		return
	}
	c.JSON(http.StatusCreated, tenant)
}
