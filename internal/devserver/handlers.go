package devserver

import (
	"bufio"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const devTenantID = "tenant-dev"

// --- Contacts ---

func (s *Server) ListContacts(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	if err := s.db.Model(&Contact{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contacts := []Contact{}
	err := s.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&contacts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, legacyPage(contacts, total, page, size))
}

func (s *Server) GetContact(c *gin.Context) {
	var contact Contact
	if err := s.db.First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

type contactRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) CreateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	s.db.Model(&Contact{}).Where("phone = ?", req.Phone).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone number already exists"})
		return
	}

	contact := Contact{
		ID:       uuid.NewString(),
		Phone:    req.Phone,
		Name:     req.Name,
		Email:    req.Email,
		TenantID: devTenantID,
	}
	if err := s.db.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (s *Server) UpdateContact(c *gin.Context) {
	var contact Contact
	if err := s.db.First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	var req struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Phone != "" {
		contact.Phone = req.Phone
	}
	if req.Name != "" {
		contact.Name = req.Name
	}
	if req.Email != "" {
		contact.Email = req.Email
	}
	if err := s.db.Save(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) DeleteContact(c *gin.Context) {
	result := s.db.Delete(&Contact{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Contact deleted"})
}

func (s *Server) SearchContactsByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
		return
	}

	contacts := []Contact{}
	err := s.db.Where("phone LIKE ?", "%"+phone+"%").Order("created_at DESC").Limit(20).Find(&contacts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(contacts, int64(len(contacts)), 0, 20))
}

func (s *Server) ListContactsByGroup(c *gin.Context) {
	page, size := pageParams(c)
	groupID := c.Param("groupId")

	var total int64
	s.db.Model(&Contact{}).Where("group_id = ?", groupID).Count(&total)

	contacts := []Contact{}
	err := s.db.Where("group_id = ?", groupID).Offset(page * size).Limit(size).Find(&contacts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(contacts, total, page, size))
}

// UploadContacts imports one phone number per line from the uploaded file.
func (s *Server) UploadContacts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	groupID := c.PostForm("groupId")

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	var imported, skipped int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		phone := strings.TrimSpace(scanner.Text())
		if phone == "" {
			continue
		}
		var existing int64
		s.db.Model(&Contact{}).Where("phone = ?", phone).Count(&existing)
		if existing > 0 {
			skipped++
			continue
		}
		contact := Contact{
			ID:       uuid.NewString(),
			Phone:    phone,
			TenantID: devTenantID,
			GroupID:  groupID,
		}
		if err := s.db.Create(&contact).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

// --- Contact groups ---

func (s *Server) withContactCount(g *ContactGroup) {
	s.db.Model(&Contact{}).Where("group_id = ?", g.ID).Count(&g.ContactCount)
}

func (s *Server) ListGroups(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&ContactGroup{}).Count(&total)

	groups := []ContactGroup{}
	err := s.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&groups).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for i := range groups {
		s.withContactCount(&groups[i])
	}
	c.JSON(http.StatusOK, legacyPage(groups, total, page, size))
}

func (s *Server) GetGroup(c *gin.Context) {
	var group ContactGroup
	if err := s.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	s.withContactCount(&group)
	c.JSON(http.StatusOK, group)
}

type groupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group := ContactGroup{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (s *Server) UpdateGroup(c *gin.Context) {
	var group ContactGroup
	if err := s.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group.Name = req.Name
	group.Description = req.Description
	if err := s.db.Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}
	s.withContactCount(&group)
	c.JSON(http.StatusOK, group)
}

func (s *Server) DeleteGroup(c *gin.Context) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Contact{}).Where("group_id = ?", c.Param("id")).Update("group_id", "").Error; err != nil {
			return err
		}
		return tx.Delete(&ContactGroup{}, "id = ?", c.Param("id")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Group deleted"})
}

// --- Senders ---

func (s *Server) ListSenders(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&Sender{}).Count(&total)

	senders := []Sender{}
	err := s.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&senders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(senders, total, page, size))
}

func (s *Server) GetSender(c *gin.Context) {
	var sender Sender
	if err := s.db.First(&sender, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
		return
	}
	c.JSON(http.StatusOK, sender)
}

type senderRequest struct {
	Name    string `json:"name" binding:"required"`
	Message string `json:"message"`
}

func (s *Server) CreateSender(c *gin.Context) {
	var req senderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sender := Sender{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Status:   "PENDING_VERIFICATION",
		TenantID: devTenantID,
		Message:  req.Message,
	}
	if err := s.db.Create(&sender).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sender"})
		return
	}
	c.JSON(http.StatusCreated, sender)
}

func (s *Server) UpdateSender(c *gin.Context) {
	var sender Sender
	if err := s.db.First(&sender, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
		return
	}
	var req senderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Renaming a sender restarts its verification.
	if req.Name != sender.Name {
		sender.Status = "PENDING_VERIFICATION"
	}
	sender.Name = req.Name
	sender.Message = req.Message
	if err := s.db.Save(&sender).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sender"})
		return
	}
	c.JSON(http.StatusOK, sender)
}

func (s *Server) DeleteSender(c *gin.Context) {
	result := s.db.Delete(&Sender{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sender"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Sender deleted"})
}

// --- API keys ---

func (s *Server) ListApiKeys(c *gin.Context) {
	page, size := pageParams(c)

	var total int64
	s.db.Model(&ApiKey{}).Where("revoked = ?", false).Count(&total)

	keys := []ApiKey{}
	err := s.db.Where("revoked = ?", false).Order("created_at DESC").Offset(page * size).Limit(size).Find(&keys).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, legacyPage(keys, total, page, size))
}

type apiKeyRequest struct {
	Name     string `json:"name" binding:"required"`
	SenderID string `json:"senderId" binding:"required"`
}

// CreateApiKey returns the secret exactly once, in the creation response.
func (s *Server) CreateApiKey(c *gin.Context) {
	var req apiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sender Sender
	if err := s.db.First(&sender, "id = ?", req.SenderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
		return
	}

	key := ApiKey{
		ID:         uuid.NewString(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Secret:     "sk_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Name:       req.Name,
	}
	if err := s.db.Create(&key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create API key"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         key.ID,
		"senderId":   key.SenderID,
		"senderName": key.SenderName,
		"apiKey":     key.Secret,
		"name":       key.Name,
		"createdAt":  key.CreatedAt,
	})
}

func (s *Server) RevokeApiKey(c *gin.Context) {
	result := s.db.Model(&ApiKey{}).Where("id = ?", c.Param("id")).Update("revoked", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke API key"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "API key revoked"})
}
