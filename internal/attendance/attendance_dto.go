package attendance

type EntryExitDuration struct {
	EntryDate    string `json:"entry_date"`
	ReasonType   int16  `json:"reason_type"`
	ReasonName   string `json:"reason_name"`
	TotalMinutes int    `json:"total_minutes"`
}

type UserDurationsResponse struct {
	PersonnelID string              `json:"personnel_id"`
	UserName    string              `json:"user_name"`
	Durations   []EntryExitDuration `json:"durations"`
}

type EventResponse struct {
	ID         string  `json:"id"`
	ReasonType int16   `json:"reason_type"`
	ReasonName string  `json:"reason_name"`
	EntryAt    string  `json:"entry_at"`
	ExitAt     *string `json:"exit_at,omitempty"`
	Status     string  `json:"status"`
}
