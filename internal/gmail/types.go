package gmail

// Defaults and limits for the list operations.
const (
	DefaultHours      = 24
	DefaultMaxResults = 50
	SearchHours       = 8760

	// MaxResultsLimit is the largest page messages.list accepts.
	MaxResultsLimit = 500

	// ListBodyLimit caps the body of each record returned by list views.
	ListBodyLimit = 5000
)

// EmailRecord is the stable JSON shape returned for a message.
type EmailRecord struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Subject string   `json:"subject"`
	Date    string   `json:"date"`
	Snippet string   `json:"snippet"`
	Body    string   `json:"body"`
	Labels  []string `json:"labels"`
}

// ListOptions selects messages for ListEmails. Zero values take the defaults.
type ListOptions struct {
	Hours      float64
	MaxResults int64
	Query      string
}

// SendRequest describes an outgoing message.
type SendRequest struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

// SendResult is returned after a successful send.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// Profile summarizes the mailbox behind the credentials.
type Profile struct {
	EmailAddress  string `json:"emailAddress"`
	MessagesTotal int64  `json:"messagesTotal"`
	ThreadsTotal  int64  `json:"threadsTotal"`
}
