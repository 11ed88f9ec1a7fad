package model

import "time"

type Profile struct {
	ProfileID      int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	FullName       string    `json:"full_name" db:"full_name"`
	CareerRole     string    `json:"career_role" db:"career_role"`
	Skills         string    `json:"skills" db:"skills"`
	ResumeContent  string    `json:"resume_content" db:"resume_content"`
	ResumeFilePath *string   `json:"resume_file_path" db:"resume_file_path"`
	ResumeFileName *string   `json:"resume_file_name" db:"resume_file_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreateProfileReq struct {
	FullName       string  `json:"full_name" binding:"required"`
	CareerRole     string  `json:"career_role" binding:"required"`
	Skills         string  `json:"skills"`
	ResumeContent  string  `json:"resume_content"`
	ResumeFilePath *string `json:"resume_file_path"`
	ResumeFileName *string `json:"resume_file_name"`
}

type UpdateProfileReq struct {
	FullName      *string `json:"full_name,omitempty"`
	CareerRole    *string `json:"career_role,omitempty"`
	Skills        *string `json:"skills,omitempty"`
	ResumeContent *string `json:"resume_content,omitempty"`
}

type UploadResumeRes struct {
	Message       string   `json:"message"`
	ResumeContent string   `json:"resume_content"`
	Filename      string   `json:"filename"`
	Skills        []string `json:"skills,omitempty"`
}
