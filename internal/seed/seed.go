package seed

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/app/services"
)

type seedEntry struct {
	student  dto.CreateStudentRequest
	academic dto.AcademicDetailsRequest
}

// CreateDefaultData populates the students table with sample records on first
// start. It is a no-op when any student already exists.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, studentService services.StudentService, lgr zerolog.Logger) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count students for seeding: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int("students", count).Msg("Students already present, skipping seed data")
		return nil
	}

	lgr.Info().Msg("Seeding sample student data...")

	for _, entry := range seedStudents() {
		req := entry.student
		req.AcademicDetails = entry.academic
		if _, err := studentService.CreateStudent(ctx, &req); err != nil {
			return fmt.Errorf("failed to seed student %s: %w", req.Email, err)
		}
	}

	lgr.Info().Msg("Sample student data created")
	return nil
}

func seedStudents() []seedEntry {
	entries := []seedEntry{
		{
			student: dto.CreateStudentRequest{
				Name:   "Rahul Sharma",
				Email:  "rahul.sharma@email.com",
				Phone:  "+91-9876543210",
				Gender: "Male",
			},
			academic: dto.AcademicDetailsRequest{
				CollegeName:    "Indian Institute of Technology Delhi",
				Department:     "Computer Science",
				GraduationYear: 2024,
				CGPA:           8.5,
				Backlogs:       0,
			},
		},
		{
			student: dto.CreateStudentRequest{
				Name:   "Priya Patel",
				Email:  "priya.patel@email.com",
				Phone:  "+91-9876543211",
				Gender: "Female",
			},
			academic: dto.AcademicDetailsRequest{
				CollegeName:    "Delhi University",
				Department:     "Information Technology",
				GraduationYear: 2025,
				CGPA:           9.1,
				Backlogs:       0,
			},
		},
		{
			student: dto.CreateStudentRequest{
				Name:   "Amit Kumar",
				Email:  "amit.kumar@email.com",
				Phone:  "+91-9876543212",
				Gender: "Male",
			},
			academic: dto.AcademicDetailsRequest{
				CollegeName:    "Jawaharlal Nehru University",
				Department:     "Electronics",
				GraduationYear: 2024,
				CGPA:           7.8,
				Backlogs:       1,
			},
		},
		{
			student: dto.CreateStudentRequest{
				Name:   "Sneha Gupta",
				Email:  "sneha.gupta@email.com",
				Phone:  "+91-9876543213",
				Gender: "Female",
			},
			academic: dto.AcademicDetailsRequest{
				CollegeName:    "Indian Institute of Technology Mumbai",
				Department:     "Mechanical Engineering",
				GraduationYear: 2025,
				CGPA:           8.9,
				Backlogs:       0,
			},
		},
		{
			student: dto.CreateStudentRequest{
				Name:   "Vikram Singh",
				Email:  "vikram.singh@email.com",
				Phone:  "+91-9876543214",
				Gender: "Male",
			},
			academic: dto.AcademicDetailsRequest{
				CollegeName:    "Bangalore University",
				Department:     "Computer Science",
				GraduationYear: 2024,
				CGPA:           8.2,
				Backlogs:       0,
			},
		},
	}

	colleges := []string{"BITS Pilani", "VIT University", "SRM University", "Manipal University", "Anna University"}
	departments := []string{"Computer Science", "Information Technology", "Electronics", "Mechanical Engineering", "Civil Engineering"}
	firstNames := []string{"Rajesh", "Kavya", "Arjun", "Deepika", "Manoj", "Pooja", "Sanjay", "Ritu", "Ashish", "Meera"}
	lastNames := []string{"Sharma", "Patel", "Kumar", "Singh", "Gupta"}

	for i := 0; i < 20; i++ {
		gender := "Male"
		if i%2 == 1 {
			gender = "Female"
		}
		entries = append(entries, seedEntry{
			student: dto.CreateStudentRequest{
				Name:   fmt.Sprintf("%s %s", firstNames[i%len(firstNames)], lastNames[i%len(lastNames)]),
				Email:  fmt.Sprintf("student%d@email.com", i+6),
				Phone:  fmt.Sprintf("+91-987654%d", 3215+i),
				Gender: gender,
			},
			academic: dto.AcademicDetailsRequest{
				CollegeName:    colleges[i%len(colleges)],
				Department:     departments[i%len(departments)],
				GraduationYear: 2024 + i%3,
				CGPA:           math.Round((7.0+float64(i%20)*0.15)*10) / 10,
				Backlogs:       i % 3,
			},
		})
	}

	return entries
}
