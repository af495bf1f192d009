// Package types provides type definitions for the candidate records shared
// across the resume intake system.
package types

import "strings"

// Experience is a single professional work entry on a resume.
// Source order among siblings is preserved; most-recent-first is an
// ingestion convention, not enforced here.
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single educational qualification on a resume.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationYear string `json:"graduationYear,omitempty"`
}

// Candidate is the structured record produced by resume ingestion.
// ID is absent when the record comes back from the extraction service and is
// assigned before the record enters a roster.
type Candidate struct {
	ID         string       `json:"id,omitempty"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// Normalize replaces nil collections with empty ones so that rendering and
// filtering are total functions over any candidate.
func (c *Candidate) Normalize() {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Experience == nil {
		c.Experience = []Experience{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
}

// Validate checks the fields no candidate record may lack.
func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &MissingFieldError{Field: "name"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &MissingFieldError{Field: "email"}
	}
	return nil
}

// MissingFieldError indicates a candidate record lacks a mandatory field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "candidate is missing required field: " + e.Field
}

// User identifies a session. Created on login/signup; destroyed session-wise
// on logout while the underlying roster persists.
type User struct {
	Email string `json:"email"`
}
