package models

type UserType string
type JobStatus string
type ApplicationStatus string
type JobType string

const (
	UserTypeSeeker  UserType = "seeker"
	UserTypeCompany UserType = "company"

	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
)

func (t UserType) IsValid() bool {
	return t == UserTypeSeeker || t == UserTypeCompany
}

// DashboardPath - путь клиентского дашборда для типа аккаунта
func (t UserType) DashboardPath() string {
	return "/dashboard/" + string(t)
}

func (s JobStatus) IsValid() bool {
	return s == JobStatusActive || s == JobStatusInactive
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// CanWithdraw - соискатель может отозвать заявку, пока она не принята
func (s ApplicationStatus) CanWithdraw() bool {
	return s != ApplicationStatusAccepted
}

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}
