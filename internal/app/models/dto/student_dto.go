package dto

// AcademicDetailsRequest carries the academic sub-object of a create or
// update request. On update it replaces the whole first academic row, so all
// fields are plain values, not pointers.
type AcademicDetailsRequest struct {
	CollegeName    string  `json:"collegeName" binding:"required" example:"Indian Institute of Technology Delhi"`
	Department     string  `json:"department" binding:"required" example:"Computer Science"`
	GraduationYear int     `json:"graduationYear" binding:"required" example:"2024"`
	CGPA           float64 `json:"cgpa" binding:"required" example:"8.5"`
	Backlogs       int     `json:"backlogs" example:"0"`
}

// CreateStudentRequest creates a student together with its single academic
// details row.
type CreateStudentRequest struct {
	Name            string                 `json:"name" binding:"required" example:"Rahul Sharma"`
	Email           string                 `json:"email" binding:"required,email" example:"rahul.sharma@email.com"`
	Phone           string                 `json:"phone" binding:"required" example:"+91-9876543210"`
	Gender          string                 `json:"gender" binding:"required" example:"Male"`
	AcademicDetails AcademicDetailsRequest `json:"academicDetails" binding:"required"`
}

// UpdateStudentRequest is a partial update. Nil pointer fields were omitted
// by the caller and are left untouched; a non-nil AcademicDetails replaces
// the student's first academic row in full.
type UpdateStudentRequest struct {
	Name            *string                 `json:"name,omitempty" example:"New Name"`
	Email           *string                 `json:"email,omitempty" binding:"omitempty,email" example:"new.email@email.com"`
	Phone           *string                 `json:"phone,omitempty" example:"+91-9876543299"`
	Gender          *string                 `json:"gender,omitempty" example:"Female"`
	AcademicDetails *AcademicDetailsRequest `json:"academicDetails,omitempty"`
}

// SearchStudentsRequest carries the optional AND-combined search filters
type SearchStudentsRequest struct {
	College    *string `form:"college" example:"IIT"`
	Year       *int    `form:"year" example:"2024"`
	Department *string `form:"department" example:"Computer"`
}
