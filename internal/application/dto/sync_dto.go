package dto

// SyncResultResponse resultado de uma passada de reconciliação.
type SyncResultResponse struct {
	Checked int      `json:"checked"`
	Pushed  int      `json:"pushed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
