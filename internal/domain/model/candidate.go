package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Education is one degree entry on a candidate profile.
type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field,omitempty" yaml:"field"`
	StartYear   int    `json:"startYear,omitempty" yaml:"startYear"`
	EndYear     int    `json:"endYear,omitempty" yaml:"endYear"`
}

// Experience is one position held by a candidate.
type Experience struct {
	Company     string `json:"company" yaml:"company"`
	Title       string `json:"title" yaml:"title"`
	StartDate   string `json:"startDate,omitempty" yaml:"startDate"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Skills groups a candidate's skills.
type Skills struct {
	Technical []string `json:"technical,omitempty" yaml:"technical"`
	Soft      []string `json:"soft,omitempty" yaml:"soft"`
	Languages []string `json:"languages,omitempty" yaml:"languages"`
}

// Certification is a credential listed by a candidate.
type Certification struct {
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer,omitempty" yaml:"issuer"`
	Year   int    `json:"year,omitempty" yaml:"year"`
}

// Document is a file reference attached to a candidate. The content is never stored.
type Document struct {
	Name       string    `json:"name" yaml:"name"`
	Type       string    `json:"type" yaml:"type"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
}

// Link is a labelled external profile URL.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Candidate is a tracked applicant.
type Candidate struct {
	ID             string          `json:"id" yaml:"id"`
	FirstName      string          `json:"firstName" yaml:"firstName"`
	LastName       string          `json:"lastName" yaml:"lastName"`
	Email          string          `json:"email" yaml:"email"`
	Phone          string          `json:"phone,omitempty" yaml:"phone"`
	JobTitle       string          `json:"jobTitle" yaml:"jobTitle"`
	JobID          string          `json:"jobId,omitempty" yaml:"jobId"`
	Location       string          `json:"location,omitempty" yaml:"location"`
	Nationality    string          `json:"nationality,omitempty" yaml:"nationality"`
	Stage          Stage           `json:"stage" yaml:"stage"`
	Source         Source          `json:"source" yaml:"source"`
	AIScore        float64         `json:"aiScore" yaml:"aiScore"`
	AppliedAt      time.Time       `json:"appliedAt" yaml:"appliedAt"`
	WorkMode       WorkMode        `json:"workMode,omitempty" yaml:"workMode"`
	ExpectedSalary string          `json:"expectedSalary,omitempty" yaml:"expectedSalary"`
	NoticePeriod   string          `json:"noticePeriod,omitempty" yaml:"noticePeriod"`
	Education      []Education     `json:"education,omitempty" yaml:"education"`
	Experience     []Experience    `json:"experience,omitempty" yaml:"experience"`
	Skills         Skills          `json:"skills" yaml:"skills"`
	Certifications []Certification `json:"certifications,omitempty" yaml:"certifications"`
	Documents      []Document      `json:"documents,omitempty" yaml:"documents"`
	Links          []Link          `json:"links,omitempty" yaml:"links"`
}

// FullName joins first and last name.
func (c Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks the fields that the console relies on.
func (c Candidate) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: candidate id is empty", ErrInvalidValue)
	}
	if !c.Stage.IsValid() {
		return fmt.Errorf("%w: stage %q", ErrInvalidEnum, c.Stage)
	}
	if !c.Source.IsValid() {
		return fmt.Errorf("%w: source %q", ErrInvalidEnum, c.Source)
	}
	if c.WorkMode != "" && !c.WorkMode.IsValid() {
		return fmt.Errorf("%w: work mode %q", ErrInvalidEnum, c.WorkMode)
	}
	if c.AIScore < 0 || c.AIScore > 100 {
		return fmt.Errorf("%w: ai score %v outside [0,100]", ErrInvalidValue, c.AIScore)
	}
	return nil
}

// Clone returns a deep copy so callers never share slices with the owner.
func (c Candidate) Clone() Candidate {
	out := c
	out.Education = slices.Clone(c.Education)
	out.Experience = slices.Clone(c.Experience)
	out.Skills = Skills{
		Technical: slices.Clone(c.Skills.Technical),
		Soft:      slices.Clone(c.Skills.Soft),
		Languages: slices.Clone(c.Skills.Languages),
	}
	out.Certifications = slices.Clone(c.Certifications)
	out.Documents = slices.Clone(c.Documents)
	out.Links = slices.Clone(c.Links)
	return out
}
