package production

// ==================== Locking ====================

// LockKeyProduction serializes production commits. Every run touches shared
// ingredient and packaging stock, so a single key covers all products.
const LockKeyProduction = "production:commit"

// ==================== Display ====================

// Display precision used in messages. Stored values are never rounded.
const (
	DisplayPrecisionBulk   = 3
	DisplayPrecisionBatch  = 2
	DisplayPrecisionPieces = 0
)

// ==================== Error Messages ====================

// Failure messages (formatted through the message printer)
const (
	MsgInvalidPackagingMissing  = "Product %s has no valid packaging"
	MsgInvalidPackagingCapacity = "Packaging %s has a non-positive capacity (%v ml)"
	MsgDegenerateBatch          = "The requested quantity produces no units"
	MsgDegenerateQuantity       = "Requested quantity must be a finite positive number"
	MsgFormulaIntegrity         = "Formula references ingredient %s which no longer exists"
	MsgInsufficientStock        = "Not enough %s: need %v %s, have %v %s (short by %v %s)"
	MsgStaleState               = "Stock changed since the preview: %s"
	MsgQuantityTooLarge         = "A single run is limited to %d units"
	MsgBatchMismatch            = "A %v batch does not make %d × %s"
	MsgProductionSucceeded      = "Produced %d × %s from a %v batch"
	MsgConsumedLine             = "%s %v %s"
)

// Service error messages
const (
	ErrMsgGetSnapshotFailed       = "failed to get production snapshot: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgApplyMutationsFailed    = "failed to apply mutations: %w"
	ErrMsgRecordRunFailed         = "failed to record production run: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgListRunsFailed          = "failed to list production runs: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgSimulateCalled   = "Simulate called"
	LogMsgExecuteCalled    = "Execute called"
	LogMsgUnitCostCalled   = "UnitCost called"
	LogMsgRunRejected      = "Production run rejected"
	LogMsgRunCommitted     = "Production run committed"
	LogMsgPublishFailed    = "Failed to publish production event"
	LogMsgListRunsCalled   = "ListRuns called"
	LogMsgMissingReference = "Formula references missing ingredient"
)

// Default number of runs returned by ListRuns.
const DefaultRunListLimit = 50
