package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldPort          = "port"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldUserAgent     = "user_agent"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldStudentID     = "student_id"
	FieldStudentNIM    = "student_nim"
	FieldTransactionID = "transaction_id"
	FieldAmount        = "amount"
	FieldTxType        = "transaction_type"
	FieldBalance       = "balance"
	FieldUsername      = "username"
	FieldRole          = "role"
	FieldFile          = "file"
	FieldCount         = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentAuth    = "auth"
	ComponentStorage = "storage"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpList     = "list"
	OpGet      = "get"
	OpApply    = "apply"
	OpDelete   = "delete"
	OpLogin    = "login"
	OpExport   = "export"
	OpPersist  = "persist"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
