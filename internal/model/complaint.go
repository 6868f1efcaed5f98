package model

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown complaint status %q", raw)
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

type Complaint struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PhotoURL     string    `json:"photo_url"`
	Amount       float64   `json:"amount"`
	CreatedOn    time.Time `json:"created_on"`
	Status       Status    `json:"status"`
	ComplainerID int64     `json:"complainer_id"`
}
