package dto

import "time"

type DatabaseHealth struct {
	Status             string `json:"status"`
	Error              string `json:"error,omitempty"`
	OpenConnections    int    `json:"openConnections"`
	InUse              int    `json:"inUse"`
	Idle               int    `json:"idle"`
	MaxOpenConnections int    `json:"maxOpenConnections"`
	WaitCount          int64  `json:"waitCount"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Database  DatabaseHealth `json:"database"`
}
