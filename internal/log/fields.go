package log

// Standard field names. Use these instead of ad-hoc strings so records stay
// greppable across components.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldDuration  = "duration"
	FieldCount     = "count"

	FieldUserEmail     = "user_email"
	FieldCategory      = "category"
	FieldKind          = "kind"
	FieldMonth         = "month"
	FieldYear          = "year"
	FieldAmountCents   = "amount_cents"
	FieldLimitCents    = "limit_cents"
	FieldPercentSpent  = "percent_spent"
	FieldTransactionID = "transaction_id"
	FieldBudgetID      = "budget_id"
	FieldQueue         = "queue"
	FieldExchange      = "exchange"
	FieldSpreadsheet   = "spreadsheet_id"
)

// Component names.
const (
	ComponentApp         = "app"
	ComponentStorage     = "storage"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
	ComponentExport      = "export"
	ComponentAuth        = "auth"
	ComponentBudget      = "budget"
	ComponentTransaction = "transaction"
	ComponentNotifier    = "notifier"
)
