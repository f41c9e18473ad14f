package pathways

import (
	"net/url"
	"strconv"
	"strings"
)

// Params builds the query fragment of a request URL. Keys are emitted in
// insertion order as "key=value&" pairs prefixed with "?"; the trailing
// ampersand is part of the wire format the service accepts and is kept.
// Unset keys are simply never added, so there is no "undefined" leakage.
//
// Values are percent-escaped; that is the only deviation from the
// historical format.
type Params struct {
	pairs []queryPair
}

type queryPair struct {
	key   string
	value string
}

// NewParams creates an empty parameter list.
func NewParams() *Params {
	return &Params{}
}

// Set appends a string parameter.
func (p *Params) Set(key, value string) {
	p.pairs = append(p.pairs, queryPair{key: key, value: value})
}

// SetInt appends an integer parameter in decimal form.
func (p *Params) SetInt(key string, value int) {
	p.Set(key, strconv.Itoa(value))
}

// SetBool appends a boolean parameter as "true"/"false".
func (p *Params) SetBool(key string, value bool) {
	p.Set(key, strconv.FormatBool(value))
}

// Len returns the number of parameters set.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.pairs)
}

// Encode renders the query fragment, or "" when no parameters are set.
func (p *Params) Encode() string {
	if p == nil || len(p.pairs) == 0 {
		return ""
	}

	var builder strings.Builder

	builder.WriteByte('?')

	for _, pair := range p.pairs {
		builder.WriteString(pair.key)
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(pair.value))
		builder.WriteByte('&')
	}

	return builder.String()
}
