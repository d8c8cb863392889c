package discord

// Embed styling
const (
	ColorWarning = 0xe67e22 // Orange
	FooterText   = "Vista"

	TitleLowPackaging = "📦 Packaging Below Minimum"
)

// Embed field names
const (
	FieldPackaging = "Packaging"
	FieldInStock   = "In stock"
	FieldMinimum   = "Minimum"
	FieldRun       = "Triggered by"
)

// Log messages
const (
	LogMsgAlertSent       = "Low-stock alert sent"
	LogMsgAlertFailed     = "Failed to send low-stock alert"
	LogMsgAlertUndecoded  = "Production event payload could not be decoded"
	LogMsgNotifierEnabled = "Discord low-stock alerts enabled"
)
