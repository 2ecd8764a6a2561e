package idsvc

import (
	"errors"
	"time"

	"github.com/lyle8341/flake/pkg/snowflake"
)

// MaxBatch caps the number of ids a single Generate or Stream call may ask for.
const MaxBatch = 10000

// ErrInvalidArgument marks caller mistakes; transports map it to 400 /
// InvalidArgument.
var ErrInvalidArgument = errors.New("invalid argument")

// Decoded is an id together with its fields.
type Decoded struct {
	ID   int64     `json:"id,string"`
	Time time.Time `json:"time"`
	snowflake.Parts
}

func newDecoded(id int64, p snowflake.Parts) Decoded {
	return Decoded{ID: id, Parts: p, Time: p.Time().UTC()}
}

// Sink receives ids one at a time from Stream.
type Sink interface {
	Send(id int64) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(id int64) error

func (f SinkFunc) Send(id int64) error { return f(id) }
