package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) ListTenants(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&Tenant{}).Count(&total)

	tenants := []Tenant{}
	err := s.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&tenants).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(tenants, total, page, size))
}

func (s *Server) GetTenant(c *gin.Context) {
	var tenant Tenant
	if err := s.db.First(&tenant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (s *Server) ListPendingSenders(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&Sender{}).Where("status = ?", "PENDING_VERIFICATION").Count(&total)

	senders := []Sender{}
	err := s.db.Where("status = ?", "PENDING_VERIFICATION").Offset(page * size).Limit(size).Find(&senders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(senders, total, page, size))
}

type approvalRequest struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

func (s *Server) ApproveSender(c *gin.Context) {
	var sender Sender
	if err := s.db.First(&sender, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Approved {
		sender.Status = "ACTIVE"
	} else {
		sender.Status = "REJECTED"
	}
	sender.Message = req.Message
	if err := s.db.Save(&sender).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sender"})
		return
	}
	c.JSON(http.StatusOK, sender)
}

func (s *Server) ListPendingSmsJobs(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&SmsJob{}).Where("approval_status = ?", "PENDING_APPROVAL").Count(&total)

	jobs := []SmsJob{}
	err := s.db.Where("approval_status = ?", "PENDING_APPROVAL").Offset(page * size).Limit(size).Find(&jobs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(jobs, total, page, size))
}

func (s *Server) ApproveSmsJob(c *gin.Context) {
	var job SmsJob
	if err := s.db.First(&job, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Approved {
		job.ApprovalStatus = "APPROVED"
		job.Status = "COMPLETED"
		job.SuccessCount = job.TotalRecipients
	} else {
		job.ApprovalStatus = "REJECTED"
		job.Status = "REJECTED"
	}
	if err := s.db.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) ListSmsPackages(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&SmsPackage{}).Count(&total)

	pkgs := []SmsPackage{}
	err := s.db.Offset(page * size).Limit(size).Find(&pkgs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(pkgs, total, page, size))
}

type smsPackageRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	SmsCount int64   `json:"smsCount" binding:"required"`
}

func (s *Server) CreateSmsPackage(c *gin.Context) {
	var req smsPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg := SmsPackage{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Price:    req.Price,
		SmsCount: req.SmsCount,
	}
	if err := s.db.Create(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (s *Server) UpdateSmsPackage(c *gin.Context) {
	var pkg SmsPackage
	if err := s.db.First(&pkg, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}
	var req smsPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg.Name = req.Name
	pkg.Price = req.Price
	pkg.SmsCount = req.SmsCount
	if err := s.db.Save(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update package"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (s *Server) DeleteSmsPackage(c *gin.Context) {
	result := s.db.Delete(&SmsPackage{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete package"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Package deleted"})
}
