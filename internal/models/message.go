package models

import (
	"encoding/json"
	"time"
)

// Well-known tag names
const (
	TagAction        = "Action"
	TagTarget        = "Target"
	TagUser          = "User"
	TagBalance       = "Balance"
	TagDenomination  = "Denomination"
	TagTicker        = "Ticker"
	TagAmount        = "Amount"
	TagError         = "Error"
	TagDataProtocol  = "Data-Protocol"
	TagVariant       = "Variant"
	TagType          = "Type"
	TagSDK           = "SDK"
	DataProtocolAO   = "ao"
	VariantAO        = "ao.TN.1"
	TypeMessage      = "Message"
	DefaultDryRunRef = "0"
)

// Tag is a named string attribute of a message
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Tags is an ordered list of tags. Lookups use the first tag with a matching name.
type Tags []Tag

// Get returns the value of the first tag named name
func (t Tags) Get(name string) (string, bool) {
	for _, tag := range t {
		if tag.Name == name {
			return tag.Value, true
		}
	}
	return "", false
}

// Action returns the Action tag value, or empty string
func (t Tags) Action() string {
	v, _ := t.Get(TagAction)
	return v
}

// Request is an outbound message to a process
type Request struct {
	ProcessID string
	Tags      Tags
	Data      string
	// IsWrite requests bypass the cache entirely
	IsWrite bool
	// TTL > 0 makes a read cacheable
	TTL time.Duration
	// Discriminator scopes the cache entry, usually to a caller address
	Discriminator string
}

// Cacheable reports whether the request result may be served from and stored in cache
func (r *Request) Cacheable() bool {
	return !r.IsWrite && r.TTL > 0
}

// Message is a single message emitted by a process
type Message struct {
	Data   string `json:"Data"`
	Tags   Tags   `json:"Tags"`
	Target string `json:"Target,omitempty"`
	Anchor string `json:"Anchor,omitempty"`
}

// Response is the result of evaluating a request: every message the process emitted
type Response struct {
	Messages []Message       `json:"Messages"`
	Output   json.RawMessage `json:"Output,omitempty"`
	Error    string          `json:"Error,omitempty"`
}

// First returns the first message, or false when the process emitted none
func (r *Response) First() (*Message, bool) {
	if r == nil || len(r.Messages) == 0 {
		return nil, false
	}
	return &r.Messages[0], true
}
