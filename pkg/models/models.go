package models

import "time"

// SenderStatus is the approval state of a sender ID. The workflow itself is
// owned by the backend; the client only mirrors it.
type SenderStatus string

const (
	SenderActive              SenderStatus = "ACTIVE"
	SenderInactive            SenderStatus = "INACTIVE"
	SenderPendingVerification SenderStatus = "PENDING_VERIFICATION"
	SenderRejected            SenderStatus = "REJECTED"
)

type PaymentStatus string

const (
	PaymentSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentInProgress PaymentStatus = "IN_PROGRESS"
	PaymentCanceled   PaymentStatus = "CANCELED"
)

// Contact belongs to exactly one tenant; phone is unique within it.
type Contact struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactGroup aggregates contacts; ContactCount is server-computed.
type ContactGroup struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ContactCount int64     `json:"contactCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Sender struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    SenderStatus `json:"status"`
	TenantID  string       `json:"tenantId"`
	Message   string       `json:"message,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ApiKey carries the secret only in the creation response; list responses
// omit it. Revocation is terminal.
type ApiKey struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ApiKey     string    `json:"apiKey,omitempty"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SmsJob struct {
	ID              string     `json:"id"`
	Status          string     `json:"status"`
	SenderID        string     `json:"senderId"`
	Message         string     `json:"message"`
	TotalRecipients int64      `json:"totalRecipients"`
	SuccessCount    int64      `json:"successCount"`
	FailureCount    int64      `json:"failureCount"`
	ApprovalStatus  string     `json:"approvalStatus"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Transaction is produced by the external payment redirect callback.
type Transaction struct {
	ID            string        `json:"id"`
	AmountPaid    float64       `json:"amountPaid"`
	SmsCredited   int64         `json:"smsCredited"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	SmsPackage    *SmsPackage   `json:"smsPackage,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type SmsPackage struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	SmsCount int64   `json:"smsCount"`
}

type Tenant struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Status               string    `json:"status"`
	SmsCredit            int64     `json:"smsCredit"`
	SmsApprovalThreshold int64     `json:"smsApprovalThreshold"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Profile mirrors the identity-provider account. Only FirstName and LastName
// are client-editable; the update request type enforces that.
type Profile struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Username  string  `json:"username"`
	Balance   float64 `json:"balance"`
	SmsCredit int64   `json:"smsCredit"`
	TenantID  string  `json:"tenantId"`
}

type DashboardStats struct {
	TotalContacts  int64 `json:"totalContacts"`
	TotalGroups    int64 `json:"totalGroups"`
	TotalSent      int64 `json:"totalSent"`
	TotalFailed    int64 `json:"totalFailed"`
	SmsCredit      int64 `json:"smsCredit"`
	PendingSenders int64 `json:"pendingSenders"`
	PendingJobs    int64 `json:"pendingJobs"`
	TotalTenants   int64 `json:"totalTenants"`
}
