package macro

// Record is the per-letter context supplied by the caller. It is read-only
// for the duration of an expansion.
type Record map[string]string

// Record field names.
const (
	FieldID           = "id"
	FieldSubject      = "subject"
	FieldReceiverName = "receiverName"
	FieldReceiverRole = "receiverRole"
	FieldSenderName   = "senderName"
	FieldSenderRole   = "senderRole"
	FieldContent      = "content"
	FieldDate         = "date"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldDriveLink    = "driveLink"
	FieldTheme        = "theme"
	FieldMode         = "mode"
)

// contextTokens maps the lowercase token body to the record field it reads.
var contextTokens = map[string]string{
	"name":   FieldReceiverName,
	"role":   FieldReceiverRole,
	"sender": FieldSenderName,
}

// Get returns the named field, or "" when it is missing.
func (r Record) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}
