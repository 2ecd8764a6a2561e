package log

import "time"

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value any
}

func Str(key, value string) Field               { return Field{Key: key, Value: value} }
func Int(key string, value int) Field           { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field       { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field         { return Field{Key: key, Value: value} }
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value} }
func Any(key string, value any) Field           { return Field{Key: key, Value: value} }

// Err records err under "error". A nil error records nil.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Component tags an entry with the subsystem that produced it.
func Component(name string) Field { return Field{Key: ComponentKey, Value: name} }

// ComponentKey is the field key used by Component and WithComponent.
const ComponentKey = "component"
