package dto

// PlatformStatsResponse is the VC's platform overview: approval funnel
// counts for students and provosts plus hall, complaint and notice totals.
type PlatformStatsResponse struct {
	ApprovedStudentCount  int64 `json:"approvedStudentCount" example:"1204"`
	PendingStudentCount   int64 `json:"pendingStudentCount" example:"37"`
	RejectedStudentCount  int64 `json:"rejectedStudentCount" example:"12"`
	ActiveProvostCount    int64 `json:"activeProvostCount" example:"8"`
	PendingProvostCount   int64 `json:"pendingProvostCount" example:"2"`
	RejectedProvostCount  int64 `json:"rejectedProvostCount" example:"1"`
	HallCount             int64 `json:"hallCount" example:"10"`
	PendingComplaintCount int64 `json:"pendingComplaintCount" example:"5"`
	NoticeCount           int64 `json:"noticeCount" example:"42"`
}
