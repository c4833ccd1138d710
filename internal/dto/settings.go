package dto

// SetSettingRequest carries a new value for one setting key. Objects and
// arrays are stored as JSON, scalars as text.
type SetSettingRequest struct {
	Value any `json:"value"`
}

// SettingResponse defines the data returned for one setting.
type SettingResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// SettingsResponse defines the data returned for the whole settings view.
type SettingsResponse struct {
	Source   string         `json:"source"`
	Settings map[string]any `json:"settings"`
}

// SyncResponse reports the outcome of a sync run.
type SyncResponse struct {
	Operation string `json:"operation"`
	Success   bool   `json:"success"`
}
