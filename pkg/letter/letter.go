// Package letter holds the letter record and the helpers around it: the URL
// query codec used for share links, content-hash IDs and link normalization.
package letter

import (
	"time"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro"
)

// Letter is one authored letter. Content may contain /{...} placeholders.
type Letter struct {
	ID           string    `json:"id,omitempty" yaml:"id,omitempty"`
	Subject      string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	ReceiverName string    `json:"receiverName,omitempty" yaml:"receiverName,omitempty"`
	ReceiverRole string    `json:"receiverRole,omitempty" yaml:"receiverRole,omitempty"`
	SenderName   string    `json:"senderName,omitempty" yaml:"senderName,omitempty"`
	SenderRole   string    `json:"senderRole,omitempty" yaml:"senderRole,omitempty"`
	Content      string    `json:"content,omitempty" yaml:"content,omitempty"`
	Date         string    `json:"date,omitempty" yaml:"date,omitempty"`
	Phone        string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email        string    `json:"email,omitempty" yaml:"email,omitempty"`
	DriveLink    string    `json:"driveLink,omitempty" yaml:"driveLink,omitempty"`
	Theme        string    `json:"theme,omitempty" yaml:"theme,omitempty"`
	Mode         string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	SavedAt      time.Time `json:"savedAt,omitempty" yaml:"savedAt,omitempty"`
}

// Fields lists the record fields in their canonical order.
var Fields = []string{
	macro.FieldID,
	macro.FieldSubject,
	macro.FieldReceiverName,
	macro.FieldReceiverRole,
	macro.FieldSenderName,
	macro.FieldSenderRole,
	macro.FieldContent,
	macro.FieldDate,
	macro.FieldPhone,
	macro.FieldEmail,
	macro.FieldDriveLink,
	macro.FieldTheme,
	macro.FieldMode,
}

func (l *Letter) field(name string) *string {
	switch name {
	case macro.FieldID:
		return &l.ID
	case macro.FieldSubject:
		return &l.Subject
	case macro.FieldReceiverName:
		return &l.ReceiverName
	case macro.FieldReceiverRole:
		return &l.ReceiverRole
	case macro.FieldSenderName:
		return &l.SenderName
	case macro.FieldSenderRole:
		return &l.SenderRole
	case macro.FieldContent:
		return &l.Content
	case macro.FieldDate:
		return &l.Date
	case macro.FieldPhone:
		return &l.Phone
	case macro.FieldEmail:
		return &l.Email
	case macro.FieldDriveLink:
		return &l.DriveLink
	case macro.FieldTheme:
		return &l.Theme
	case macro.FieldMode:
		return &l.Mode
	default:
		return nil
	}
}

// Get returns a field by its record name.
func (l Letter) Get(name string) string {
	if p := l.field(name); p != nil {
		return *p
	}
	return ""
}

// Set assigns a field by its record name; unknown names are ignored.
func (l *Letter) Set(name, value string) {
	if p := l.field(name); p != nil {
		*p = value
	}
}

// Record converts the letter into the context record the engine reads.
func (l Letter) Record() macro.Record {
	record := make(macro.Record, len(Fields))
	for _, name := range Fields {
		if v := l.Get(name); v != "" {
			record[name] = v
		}
	}
	return record
}

// IsEmpty reports whether the letter has neither a subject nor content.
func (l Letter) IsEmpty() bool {
	return l.Subject == "" && l.Content == ""
}

// Validate checks the minimum a letter needs before it is stored.
func (l Letter) Validate() error {
	var issues []macro.ValidationIssue
	if l.IsEmpty() {
		issues = append(issues, macro.ValidationIssue{Field: "subject", Message: "subject or content is required"})
	}
	if l.DriveLink != "" && NormalizeLink(l.DriveLink) != l.DriveLink {
		issues = append(issues, macro.ValidationIssue{Field: "driveLink", Message: "must be an http(s) URL"})
	}
	if len(issues) > 0 {
		return &macro.ValidationError{Issues: issues}
	}
	return nil
}
