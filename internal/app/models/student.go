package models

import "time"

// Student is the root entity of the system. It owns its academic details and
// documents; deleting a student cascades to both.
type Student struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Rahul Sharma"`
	Email     string    `json:"email" db:"email" example:"rahul.sharma@email.com"` // unique across all students
	Phone     string    `json:"phone" db:"phone" example:"+91-9876543210"`
	Gender    string    `json:"gender" db:"gender" example:"Male"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // set once at creation, immutable

	// Relations (eagerly populated on every read path)
	AcademicDetails []AcademicDetail `json:"academicDetails"`
	Documents       []Document       `json:"documents"`
}
