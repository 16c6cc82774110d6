package devserver

import (
	"time"
)

// Gorm entities backing the stub API. Shapes mirror the wire DTOs in
// pkg/models so handlers can return them directly.

type Contact struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"index;not null" json:"phone"`
	Name      string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	Email     string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	TenantID  string    `gorm:"index" json:"tenantId"`
	GroupID   string    `gorm:"index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Contact) TableName() string { return "contacts" }

type ContactGroup struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	ContactCount int64     `gorm:"-" json:"contactCount"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ContactGroup) TableName() string { return "contact_groups" }

type Sender struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null" json:"name"`
	Status    string    `gorm:"type:varchar(32)" json:"status"`
	TenantID  string    `gorm:"index" json:"tenantId"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Sender) TableName() string { return "senders" }

type ApiKey struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SenderID   string    `gorm:"index" json:"senderId"`
	SenderName string    `gorm:"type:varchar(64)" json:"senderName"`
	Secret     string    `gorm:"type:varchar(128)" json:"-"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	Revoked    bool      `json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ApiKey) TableName() string { return "api_keys" }

type SmsJob struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	Status          string     `gorm:"type:varchar(32)" json:"status"`
	SenderID        string     `gorm:"index" json:"senderId"`
	Message         string     `gorm:"type:text" json:"message"`
	TotalRecipients int64      `json:"totalRecipients"`
	SuccessCount    int64      `json:"successCount"`
	FailureCount    int64      `json:"failureCount"`
	ApprovalStatus  string     `gorm:"type:varchar(32)" json:"approvalStatus"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SmsJob) TableName() string { return "sms_jobs" }

type Transaction struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	AmountPaid    float64   `json:"amountPaid"`
	SmsCredited   int64     `json:"smsCredited"`
	PaymentStatus string    `gorm:"type:varchar(32)" json:"paymentStatus"`
	SmsPackageID  string    `gorm:"index" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Transaction) TableName() string { return "transactions" }

type Tenant struct {
	ID                   string    `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"type:varchar(255)" json:"name"`
	Email                string    `gorm:"type:varchar(255)" json:"email"`
	Status               string    `gorm:"type:varchar(32)" json:"status"`
	SmsCredit            int64     `json:"smsCredit"`
	SmsApprovalThreshold int64     `json:"smsApprovalThreshold"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Tenant) TableName() string { return "tenants" }

type Profile struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"type:varchar(255)" json:"email"`
	FirstName string  `gorm:"type:varchar(255)" json:"firstName"`
	LastName  string  `gorm:"type:varchar(255)" json:"lastName"`
	Username  string  `gorm:"type:varchar(255)" json:"username"`
	Balance   float64 `json:"balance"`
	SmsCredit int64   `json:"smsCredit"`
	TenantID  string  `gorm:"index" json:"tenantId"`
}

func (Profile) TableName() string { return "profiles" }

type SmsPackage struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"type:varchar(255)" json:"name"`
	Price    float64 `json:"price"`
	SmsCount int64   `json:"smsCount"`
}

func (SmsPackage) TableName() string { return "sms_packages" }
