package trace

import (
	"encoding/json"
	"time"
)

// Entry is one recorded API exchange: the request the client sent and the
// response the model produced. Entries are immutable once loaded.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Request   *Request  `json:"request,omitempty"`
	Response  *Response `json:"response,omitempty"`
}

type Request struct {
	Body *RequestBody `json:"body,omitempty"`
}

type RequestBody struct {
	Model    string           `json:"model,omitempty"`
	System   []SystemBlock    `json:"system,omitempty"`
	Messages []RequestMessage `json:"messages,omitempty"`
}

type SystemBlock struct {
	Text string `json:"text"`
}

// RequestMessage keeps content raw: the wire format allows either a bare
// string or an array of tagged blocks, and decoding is the conversation
// package's job.
type RequestMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Response carries either a fully materialized body or the opaque bytes of a
// streamed response that still needs reconstruction.
type Response struct {
	Body    *ResponseBody `json:"body,omitempty"`
	BodyRaw string        `json:"body_raw,omitempty"`
}

type ResponseBody struct {
	Model   string          `json:"model,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
	Usage   *Usage          `json:"usage,omitempty"`
}

// Usage holds the token counts the API reports for one exchange. Cache write
// tokens arrive either as a flat cache_creation_input_tokens count or split by
// cache lifetime under cache_creation.
type Usage struct {
	InputTokens              int            `json:"input_tokens"`
	OutputTokens             int            `json:"output_tokens"`
	CacheReadInputTokens     int            `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int            `json:"cache_creation_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
}

type CacheCreation struct {
	Ephemeral5mInputTokens int `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int `json:"ephemeral_1h_input_tokens"`
}

// CacheWrite5m returns the 5-minute cache write tokens. A flat
// cache_creation_input_tokens count without a lifetime split is billed at the
// 5m rate.
func (u *Usage) CacheWrite5m() int {
	if u == nil {
		return 0
	}
	if u.CacheCreation != nil {
		return u.CacheCreation.Ephemeral5mInputTokens
	}
	return u.CacheCreationInputTokens
}

func (u *Usage) CacheWrite1h() int {
	if u == nil || u.CacheCreation == nil {
		return 0
	}
	return u.CacheCreation.Ephemeral1hInputTokens
}

// ContextLength is the total input-side token count used to decide whether a
// request crossed into a long-context pricing tier.
func (u *Usage) ContextLength() int {
	if u == nil {
		return 0
	}
	return u.InputTokens + u.CacheReadInputTokens + u.CacheWrite5m() + u.CacheWrite1h()
}

// Model returns the model identifier for the entry, preferring the response
// body's echo over the request's.
func (e *Entry) Model() string {
	if e == nil {
		return ""
	}
	if e.Response != nil && e.Response.Body != nil && e.Response.Body.Model != "" {
		return e.Response.Body.Model
	}
	if e.Request != nil && e.Request.Body != nil {
		return e.Request.Body.Model
	}
	return ""
}

// Usage returns the response usage block, or nil when the trace carries none.
func (e *Entry) Usage() *Usage {
	if e == nil || e.Response == nil || e.Response.Body == nil {
		return nil
	}
	return e.Response.Body.Usage
}
