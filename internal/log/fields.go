package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldExpenseID = "expense_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldPeriod    = "period"
	FieldBudget    = "budget"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
	ComponentExport  = "export"
	ComponentTUI     = "tui"
)

// Operations defines standard operation names
const (
	OpAdd       = "add"
	OpDelete    = "delete"
	OpList      = "list"
	OpSummary   = "summary"
	OpSetBudget = "set_budget"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
