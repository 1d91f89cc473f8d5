package models

// Settings holds user configuration persisted by the storage provider.
// WeekStartDay is 0-6 with 0=Sunday; Timezone is an IANA name or "Local".
type Settings struct {
	WeekStartDay int    `json:"week_start_day"`
	Timezone     string `json:"timezone"`
}
