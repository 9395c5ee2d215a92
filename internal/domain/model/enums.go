package model

import (
	"fmt"
	"slices"
	"strings"
)

// parseEnum normalizes s and returns it as T when it is one of valid.
func parseEnum[T ~string](kind, s string, valid []T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(valid, v) {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, s)
}

// Stage is a candidate's position in the hiring pipeline.
type Stage string

const (
	StageNew         Stage = "new"
	StageShortlisted Stage = "shortlisted"
	StageInterviewed Stage = "interviewed"
	StageOffered     Stage = "offered"
	StageHired       Stage = "hired"
	StageRejected    Stage = "rejected"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageNew, StageShortlisted, StageInterviewed, StageOffered, StageHired, StageRejected}

func ParseStage(s string) (Stage, error) { return parseEnum("stage", s, Stages) }
func (s Stage) IsValid() bool            { return slices.Contains(Stages, s) }
func (s Stage) String() string           { return string(s) }

func (s *Stage) UnmarshalText(b []byte) (err error) {
	*s, err = ParseStage(string(b))
	return err
}

// Source is where a candidate came from.
type Source string

const (
	SourceLinkedIn Source = "linkedin"
	SourcePortal   Source = "portal"
	SourceReferral Source = "referral"
	SourceOther    Source = "other"
)

var Sources = []Source{SourceLinkedIn, SourcePortal, SourceReferral, SourceOther}

func ParseSource(s string) (Source, error) { return parseEnum("source", s, Sources) }
func (s Source) IsValid() bool             { return slices.Contains(Sources, s) }
func (s Source) String() string            { return string(s) }

func (s *Source) UnmarshalText(b []byte) (err error) {
	*s, err = ParseSource(string(b))
	return err
}

// WorkMode is where a candidate wants to work from.
type WorkMode string

const (
	WorkModeOnsite WorkMode = "onsite"
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
)

var WorkModes = []WorkMode{WorkModeOnsite, WorkModeRemote, WorkModeHybrid}

func ParseWorkMode(s string) (WorkMode, error) { return parseEnum("work mode", s, WorkModes) }
func (w WorkMode) IsValid() bool               { return slices.Contains(WorkModes, w) }

// UnmarshalText accepts an empty value: work mode is optional.
func (w *WorkMode) UnmarshalText(b []byte) (err error) {
	if len(b) == 0 {
		*w = ""
		return nil
	}
	*w, err = ParseWorkMode(string(b))
	return err
}

// JobStatus is the state of a job requisition.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
	JobOnHold JobStatus = "on_hold"
)

var JobStatuses = []JobStatus{JobOpen, JobClosed, JobDraft, JobOnHold}

func ParseJobStatus(s string) (JobStatus, error) { return parseEnum("job status", s, JobStatuses) }

func (j *JobStatus) UnmarshalText(b []byte) (err error) {
	*j, err = ParseJobStatus(string(b))
	return err
}

// JobType is the employment type of a requisition.
type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

var JobTypes = []JobType{JobFullTime, JobPartTime, JobContract, JobInternship}

func ParseJobType(s string) (JobType, error) { return parseEnum("job type", s, JobTypes) }

func (j *JobType) UnmarshalText(b []byte) (err error) {
	*j, err = ParseJobType(string(b))
	return err
}

// InterviewType is how an interview is held.
type InterviewType string

const (
	InterviewPhone  InterviewType = "phone"
	InterviewVideo  InterviewType = "video"
	InterviewOnsite InterviewType = "onsite"
)

var InterviewTypes = []InterviewType{InterviewPhone, InterviewVideo, InterviewOnsite}

func ParseInterviewType(s string) (InterviewType, error) {
	return parseEnum("interview type", s, InterviewTypes)
}

func (i *InterviewType) UnmarshalText(b []byte) (err error) {
	*i, err = ParseInterviewType(string(b))
	return err
}

// InterviewStatus tracks a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

var InterviewStatuses = []InterviewStatus{InterviewScheduled, InterviewCompleted, InterviewCancelled}

func ParseInterviewStatus(s string) (InterviewStatus, error) {
	return parseEnum("interview status", s, InterviewStatuses)
}

func (i *InterviewStatus) UnmarshalText(b []byte) (err error) {
	*i, err = ParseInterviewStatus(string(b))
	return err
}

// Recommendation is an interviewer's verdict.
type Recommendation string

const (
	StrongHire   Recommendation = "strong_hire"
	Hire         Recommendation = "hire"
	NoHire       Recommendation = "no_hire"
	StrongNoHire Recommendation = "strong_no_hire"
)

var Recommendations = []Recommendation{StrongHire, Hire, NoHire, StrongNoHire}

func ParseRecommendation(s string) (Recommendation, error) {
	return parseEnum("recommendation", s, Recommendations)
}

func (r *Recommendation) UnmarshalText(b []byte) (err error) {
	*r, err = ParseRecommendation(string(b))
	return err
}

// ActivityKind classifies an activity timeline entry.
type ActivityKind string

const (
	ActivityApplied            ActivityKind = "applied"
	ActivityStageChanged       ActivityKind = "stage_changed"
	ActivityRejected           ActivityKind = "rejected"
	ActivityNote               ActivityKind = "note"
	ActivityInterviewScheduled ActivityKind = "interview_scheduled"
	ActivityFeedbackAdded      ActivityKind = "feedback_added"
	ActivityOfferCreated       ActivityKind = "offer_created"
	ActivityOfferUpdated       ActivityKind = "offer_updated"
	ActivityEmailSent          ActivityKind = "email_sent"
)

var ActivityKinds = []ActivityKind{
	ActivityApplied, ActivityStageChanged, ActivityRejected, ActivityNote, ActivityInterviewScheduled,
	ActivityFeedbackAdded, ActivityOfferCreated, ActivityOfferUpdated, ActivityEmailSent,
}

func ParseActivityKind(s string) (ActivityKind, error) {
	return parseEnum("activity kind", s, ActivityKinds)
}

func (a *ActivityKind) UnmarshalText(b []byte) (err error) {
	*a, err = ParseActivityKind(string(b))
	return err
}
