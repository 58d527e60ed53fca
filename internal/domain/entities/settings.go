package entities

// DefaultLang is the language used when a guild has not picked one
const DefaultLang = "EN"

// SettingsBag is a guild's settings document: a small set of
// recognized keys plus arbitrary per-guild overrides. Unknown keys
// pass through untouched for forward compatibility.
type SettingsBag map[string]any

// Lang returns the guild language code
func (b SettingsBag) Lang() string {
	if v, ok := b["lang"].(string); ok && v != "" {
		return v
	}
	return DefaultLang
}

// GetString returns a string value by key
func (b SettingsBag) GetString(key string) (string, bool) {
	v, ok := b[key].(string)
	return v, ok
}

// GetInt returns an integer value by key, accepting the float64
// form JSON decoding produces
func (b SettingsBag) GetInt(key string) (int, bool) {
	switch v := b[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// GetBool returns a boolean value by key
func (b SettingsBag) GetBool(key string) (bool, bool) {
	v, ok := b[key].(bool)
	return v, ok
}

// Clone returns a shallow copy of the bag
func (b SettingsBag) Clone() SettingsBag {
	out := make(SettingsBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
