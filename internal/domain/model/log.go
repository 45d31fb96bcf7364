package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cache outcomes recorded on request logs.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// RequestLog is one served HTTP request as stored in the request log collection.
type RequestLog struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms" json:"duration_ms"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Package    string                 `bson:"package,omitempty" json:"package,omitempty"`
	Cache      string                 `bson:"cache,omitempty" json:"cache,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the log's Fields map, initialising it if needed.
func (e *RequestLog) WithField(key string, value interface{}) *RequestLog {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields adds multiple fields to the log's Fields map.
func (e *RequestLog) WithFields(fields map[string]interface{}) *RequestLog {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// RequestLogQuery filters request logs. Zero values match everything.
type RequestLogQuery struct {
	RequestID string
	Package   string
	Level     string
	Cache     string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
