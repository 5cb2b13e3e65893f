package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MilestoneSource records which key resolved a lead's milestone.
type MilestoneSource string

const (
	MilestoneSourceNone  MilestoneSource = ""
	MilestoneSourcePhone MilestoneSource = "phone"
	MilestoneSourceName  MilestoneSource = "name"
)

// Lead is one normalized row of a vendor lead export.
// Empty strings stand for missing values.
type Lead struct {
	ID              uuid.UUID       `json:"id" yaml:"id"`
	Vendor          string          `json:"vendor" yaml:"vendor"`
	Campaign        string          `json:"campaign" yaml:"campaign"`
	SourceFile      string          `json:"source_file" yaml:"source_file"`
	Email           string          `json:"email,omitempty" yaml:"email,omitempty"`
	FirstName       string          `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName        string          `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Phone           string          `json:"phone,omitempty" yaml:"phone,omitempty"`
	Cost            decimal.Decimal `json:"cost" yaml:"cost"`
	CreatedAt       *time.Time      `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Zip             string          `json:"zip,omitempty" yaml:"zip,omitempty"`
	Milestone       string          `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	MilestoneSource MilestoneSource `json:"milestone_source,omitempty" yaml:"milestone_source,omitempty"`
}

// NewLead creates a lead with a fresh identifier and zero cost.
func NewLead(vendor, campaign, sourceFile string) Lead {
	return Lead{
		ID:         uuid.New(),
		Vendor:     vendor,
		Campaign:   campaign,
		SourceFile: sourceFile,
		Cost:       decimal.Zero,
	}
}

// HasMilestone reports whether a disposition milestone was resolved.
func (l Lead) HasMilestone() bool {
	return l.Milestone != ""
}

// DistinctKey identifies the underlying lead for distinct counting: the email
// when present, otherwise the row identifier. Summed per-group lead counts
// equal the distinct email count only when every lead carries an email; each
// email-less row counts as its own lead.
func (l Lead) DistinctKey() string {
	if l.Email != "" {
		return "email:" + l.Email
	}
	return "id:" + l.ID.String()
}

// Disposition is one row of the outreach disposition log.
type Disposition struct {
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Milestone string `json:"milestone" yaml:"milestone"`
	Folder    string `json:"folder,omitempty" yaml:"folder,omitempty"`
}

// Sale is one row of the sales/policy ledger.
type Sale struct {
	Email         string          `json:"email,omitempty" yaml:"email,omitempty"`
	Customer      string          `json:"customer,omitempty" yaml:"customer,omitempty"`
	PolicyNumber  string          `json:"policy_number,omitempty" yaml:"policy_number,omitempty"`
	Premium       decimal.Decimal `json:"premium" yaml:"premium"`
	Items         decimal.Decimal `json:"items" yaml:"items"`
	AssignedAgent string          `json:"assigned_agent,omitempty" yaml:"assigned_agent,omitempty"`
}
