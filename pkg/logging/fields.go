package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers for recurring log dimensions

// Component names a map component being scored or analyzed.
func Component(name string) Field {
	return String("component", name)
}

// Subsystem tags the engine subsystem emitting the entry.
func Subsystem(name string) Field {
	return String("subsystem", name)
}

// Stage records an evolution stage name.
func Stage(stage string) Field {
	return String("stage", stage)
}

// Method records which scoring tier produced a result.
func Method(method string) Field {
	return String("method", method)
}

// Confidence records a scoring confidence value.
func Confidence(confidence float64) Field {
	return Float64("confidence", confidence)
}

// Components records how many components an operation touched.
func Components(n int) Field {
	return Int("components", n)
}

// Dependencies records how many dependency edges an operation touched.
func Dependencies(n int) Field {
	return Int("dependencies", n)
}

// Insights records how many strategic insights an analysis produced.
func Insights(n int) Field {
	return Int("insights", n)
}

// RequestID carries the per-request correlation id.
func RequestID(id string) Field {
	return String("request_id", id)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
