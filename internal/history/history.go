package history

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coldreach/internal/email"
	"coldreach/internal/prospect"
	"coldreach/internal/research"
)

const DefaultRecentLimit = 20

// Record is one generated email, kept so past outreach can be reviewed
// and prospects are not contacted twice with the same pitch.
type Record struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:128;not null" json:"name"`
	Company   string         `gorm:"size:128;not null" json:"company"`
	Role      string         `gorm:"size:128" json:"role"`
	Email     string         `gorm:"size:254;index" json:"email"`
	LinkedIn  string         `gorm:"size:254" json:"linkedin"`
	Website   string         `gorm:"size:254" json:"website"`
	Provider  string         `gorm:"size:32;not null" json:"provider"`
	Subject   string         `gorm:"size:254;not null" json:"subject"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	FollowUp  string         `gorm:"type:text" json:"follow_up"`
	Research  datatypes.JSON `json:"research"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Store handles persisting and querying generation records.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save snapshots the prospect, the generated email and the research
// findings that drove it. res may be nil when research was skipped.
func (s *Store) Save(p *prospect.Prospect, e *email.Email, provider string, res *research.Result) (*Record, error) {
	rec := &Record{
		Name:     p.Name,
		Company:  p.Company,
		Role:     p.Role,
		Email:    p.Email,
		LinkedIn: p.LinkedIn,
		Website:  p.Website,
		Provider: provider,
		Subject:  e.Subject,
		Body:     e.Body,
		FollowUp: e.FollowUp,
	}
	if res != nil {
		raw, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("failed to encode research snapshot: %w", err)
		}
		rec.Research = datatypes.JSON(raw)
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Recent returns the newest records first. A non-positive limit falls
// back to DefaultRecentLimit.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var recs []Record
	if err := s.db.Order("created_at desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Store) Get(id uint) (*Record, error) {
	var rec Record
	if err := s.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
