package valueobjects

// UpdateMode selects between writing and removing keys in a
// settings or document update.
type UpdateMode string

const (
	UpdateModeSet    UpdateMode = "set"
	UpdateModeDelete UpdateMode = "delete"
)

// String returns the string representation
func (m UpdateMode) String() string {
	return string(m)
}

// IsValid checks if the update mode is valid
func (m UpdateMode) IsValid() bool {
	return m == UpdateModeSet || m == UpdateModeDelete
}
