package transport

// SettingsResponse is the vocabulary used by the dashboard dropdowns.
type SettingsResponse struct {
	LeadQualities      []string `json:"leadQualities"`
	BusinessIndustries []string `json:"businessIndustries"`
}

// UpdateSettingsRequest replaces the stored vocabulary lists.
type UpdateSettingsRequest struct {
	LeadQualities      []string `json:"leadQualities" validate:"required,min=1,dive,required,max=50"`
	BusinessIndustries []string `json:"businessIndustries" validate:"required,min=1,dive,required,max=100"`
}
