package models

// AcademicDetail holds one student's academic standing. The schema permits
// several rows per student, though the create flow only ever makes one.
type AcademicDetail struct {
	ID             int64   `json:"id" db:"id" example:"1"`
	StudentID      int64   `json:"studentId" db:"student_id" example:"1"`
	CollegeName    string  `json:"collegeName" db:"college_name" example:"Indian Institute of Technology Delhi"`
	Department     string  `json:"department" db:"department" example:"Computer Science"`
	GraduationYear int     `json:"graduationYear" db:"graduation_year" example:"2024"`
	CGPA           float64 `json:"cgpa" db:"cgpa" example:"8.5"`
	Backlogs       int     `json:"backlogs" db:"backlogs" example:"0"`
}
