package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

type TestimonialRating string

const (
	RatingGood TestimonialRating = "good"
	RatingBad  TestimonialRating = "bad"
)

func (r TestimonialRating) IsValid() bool {
	return r == RatingGood || r == RatingBad
}

// Testimonial is a patient review. It stays hidden from public listings until
// IsApproved is set by a moderator.
type Testimonial struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string            `gorm:"type:varchar(100);not null" json:"name"`
	DoctorID    int64             `gorm:"not null;index" json:"doctor_id"`
	Message     string            `gorm:"type:text;not null" json:"message"`
	Rating      TestimonialRating `gorm:"type:varchar(10);not null" json:"rating"`
	IsApproved  bool              `gorm:"not null;default:false;index" json:"is_approved"`
	Fingerprint string            `gorm:"type:char(64);uniqueIndex;not null" json:"-"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// TestimonialFingerprint hashes the (name, doctor, message) tuple that must be
// unique across testimonials. Fields are length-prefixed so no two distinct
// tuples share an encoding.
func TestimonialFingerprint(name string, doctorID int64, message string) string {
	h := sha256.New()
	for _, field := range []string{name, strconv.FormatInt(doctorID, 10), message} {
		h.Write([]byte(strconv.Itoa(len(field))))
		h.Write([]byte{':'})
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprinted stamps the fingerprint from the current field values.
func (t *Testimonial) Fingerprinted() *Testimonial {
	t.Fingerprint = TestimonialFingerprint(t.Name, t.DoctorID, t.Message)
	return t
}

func (t *Testimonial) Approve() {
	t.IsApproved = true
}
