// Package contact is the contact form: it reads the page inputs, sends them through a Sender off the
// frame loop and reports the outcome back on it.
package contact

import (
	"context"
	"errors"
	"strings"

	"portfolio/internal/logger"
	"portfolio/internal/ui"
)

var (
	// ErrBusy is returned by Submit while a previous message is still being sent.
	ErrBusy = errors.New("contact: a message is already being sent")
	// ErrIncomplete is returned by Submit when a required field is empty.
	ErrIncomplete = errors.New("contact: name, email and message are required")
)

// Notices shown in the form's notice label.
const (
	NoticeSent       = "Message sent successfully!"
	NoticeFailed     = "Failed to send message. Please try again."
	NoticeIncomplete = "Please fill in your name, email and message."
	NoticeSending    = "Sending..."
)

// Fields are the page nodes the form reads and writes. Any of them may be nil.
type Fields struct {
	FullName *ui.Node
	Email    *ui.Node
	Phone    *ui.Node
	Message  *ui.Node
	Notice   *ui.Node
}

// Form owns one in-flight send at a time. Submit and Poll must be called from the frame loop; only
// the send itself runs on another goroutine.
type Form struct {
	sender  Sender
	log     *logger.Logger
	fields  Fields
	results chan error
	busy    bool
	notice  string

	// OnResult, if set, runs on the frame loop after a send finished (nil error on success).
	OnResult func(error)
}

// NewForm binds a sender to the page fields. log may be nil.
func NewForm(sender Sender, log *logger.Logger, fields Fields) *Form {
	return &Form{sender: sender, log: log, fields: fields, results: make(chan error, 1)}
}

// Fields returns the bound nodes.
func (f *Form) Fields() Fields {
	return f.fields
}

// Message reads the current input values.
func (f *Form) Message() Message {
	return Message{
		FullName: value(f.fields.FullName),
		Email:    value(f.fields.Email),
		Phone:    value(f.fields.Phone),
		Message:  value(f.fields.Message),
	}
}

// Submit starts sending the current values. The outcome arrives through Poll.
func (f *Form) Submit(ctx context.Context) error {
	if f.busy {
		return ErrBusy
	}
	m := f.Message()
	if strings.TrimSpace(m.FullName) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		f.setNotice(NoticeIncomplete)
		return ErrIncomplete
	}
	f.busy = true
	f.setNotice(NoticeSending)
	f.log.Logf("contact: sending message from %s", m.Email)
	go func() {
		f.results <- f.sender.Send(ctx, m)
	}()
	return nil
}

// Busy reports whether a send is in flight.
func (f *Form) Busy() bool {
	return f.busy
}

// Poll applies a finished send, if any, and reports whether one was applied. On success the inputs
// are cleared; on failure they are kept so the user can resubmit. There is no retry.
func (f *Form) Poll() bool {
	select {
	case err := <-f.results:
		f.finish(err)
		return true
	default:
		return false
	}
}

func (f *Form) finish(err error) {
	f.busy = false
	if err != nil {
		f.log.Logf("contact: send failed: %v", err)
		f.setNotice(NoticeFailed)
	} else {
		f.log.Log("contact: message sent")
		f.setNotice(NoticeSent)
		f.Reset()
	}
	if f.OnResult != nil {
		f.OnResult(err)
	}
}

// Reset clears every input.
func (f *Form) Reset() {
	for _, n := range []*ui.Node{f.fields.FullName, f.fields.Email, f.fields.Phone, f.fields.Message} {
		if n != nil {
			n.Text = ""
		}
	}
}

// Notice returns the last notice text.
func (f *Form) Notice() string {
	return f.notice
}

func (f *Form) setNotice(s string) {
	f.notice = s
	if f.fields.Notice != nil {
		f.fields.Notice.Text = s
		f.fields.Notice.Hidden = s == ""
	}
}

func value(n *ui.Node) string {
	if n == nil {
		return ""
	}
	return n.Text
}
