package dto

// DutyRequest represents a duty-time entry. Two forms are accepted:
// a direct minute delta {dutyTime}, or a clock-time range
// {dutyStartTime, dutyEndTime} optionally naming the scout by
// studentId or name when it differs from the path id.
type DutyRequest struct {
	DutyTime      *int64 `json:"dutyTime"`
	StudentID     string `json:"studentId"`
	Name          string `json:"name"`
	DutyStartTime string `json:"dutyStartTime"`
	DutyEndTime   string `json:"dutyEndTime"`
}

// IsDelta reports whether the request carries a direct minute delta
func (r *DutyRequest) IsDelta() bool {
	return r.DutyTime != nil
}

// Validate checks that exactly one of the two forms is present
func (r *DutyRequest) Validate() (bool, string) {
	if r.DutyTime != nil {
		return true, ""
	}
	if r.DutyStartTime == "" || r.DutyEndTime == "" {
		return false, "Either dutyTime or both dutyStartTime and dutyEndTime are required"
	}
	return true, ""
}

// DutyResponse is the updated user plus the minutes this entry applied
type DutyResponse struct {
	UserResponse
	AppliedMinutes int64 `json:"appliedMinutes"`
}
