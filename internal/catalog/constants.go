package catalog

// Validation messages
const (
	ErrMsgNameRequired      = "name is required"
	ErrMsgNegativeStock     = "stock must be a finite number >= 0"
	ErrMsgNegativeCost      = "cost must be a finite number >= 0"
	ErrMsgInvalidUnit       = "display unit must be one of kg, l, pcs"
	ErrMsgInvalidCapacity   = "capacity must be a finite number > 0"
	ErrMsgNegativeMinStock  = "min stock must be >= 0"
	ErrMsgNegativePrice     = "sale price must be a finite number >= 0"
	ErrMsgPackagingRequired = "packaging id is required"
	ErrMsgInvalidAmount     = "formula amount must be a finite number >= 0"
	ErrMsgRestockQuantity   = "restock quantity must be a finite number > 0"
)

// Seed errors
const (
	ErrMsgSeedRead   = "failed to read seed file"
	ErrMsgSeedDecode = "failed to decode seed file"
	ErrMsgSeedSchema = "seed file does not match schema"
)

// Log messages
const (
	LogMsgCreated        = "Catalog entry created"
	LogMsgUpdated        = "Catalog entry updated"
	LogMsgDeleted        = "Catalog entry deleted"
	LogMsgRestockCalled  = "Restock called"
	LogMsgRestockApplied = "Restock applied"
	LogMsgSeedApplied    = "Catalog seed applied"
)

// Event source reported in metadata
const eventSource = "catalog"
