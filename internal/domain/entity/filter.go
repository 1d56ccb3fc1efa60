package entity

import "time"

// DashboardFilter narrows a doctor's appointment list. An empty Status means all.
type DashboardFilter struct {
	Status AppointmentStatus
	Search string // ILIKE over name, phone and message
}

// AppointmentFilter is used by the back-office listing.
type AppointmentFilter struct {
	DoctorID *int64
	Date     *time.Time
	Status   AppointmentStatus
	Search   string // ILIKE over name and phone
}

type TestimonialFilter struct {
	ApprovedOnly bool
	Approved     *bool
	Rating       TestimonialRating
	Search       string // ILIKE over name and message
}

type MedicalRecordFilter struct {
	Search string // ILIKE over patient name/phone, diagnosis, treatment, doctor name
}
