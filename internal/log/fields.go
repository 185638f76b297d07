package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldAccount    = "account"
	FieldRecordName = "record_name"
	FieldAmount     = "amount_cents"
	FieldCategory   = "category"
	FieldFilename   = "filename"
	FieldRowCount   = "row_count"
	FieldReminderID = "reminder_id"
	FieldRecipient  = "recipient"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentExpense  = "expense"
	ComponentReport   = "report"
	ComponentImporter = "importer"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentSheets   = "sheets"
	ComponentAMQP     = "amqp"
	ComponentMail     = "mail"
	ComponentAuth     = "auth"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
	ComponentTrace    = "trace"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpList     = "list"
	OpImport   = "import"
	OpExport   = "export"
	OpValidate = "validate"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpSend     = "send"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithAccount adds account field
func (f LogFields) WithAccount(account string) LogFields {
	f[FieldAccount] = account
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds expense record fields
func (f LogFields) WithRecord(name string, amountCents int64, category string) LogFields {
	f[FieldRecordName] = name
	f[FieldAmount] = amountCents
	f[FieldCategory] = category
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
