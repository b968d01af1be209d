package dto

// SettingUpsert is the only write shape for configuration values.
// Settings are mutated exclusively through this explicit upsert path.
type SettingUpsert struct {
	Code  string `validate:"required"`
	Value string `validate:"required"`
}
