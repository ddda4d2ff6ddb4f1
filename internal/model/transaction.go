package model

import "time"

// Transaction is a single card transaction for a month, as served by the
// backend. Category assignment is server-side; the client may only move a
// transaction between the fixed category labels.
type Transaction struct {
	DateTime     time.Time
	MerchantName string
	Category     string
	ID           int64
	Amount       int64
}

// YearTotal summarizes one month of the current year: total spending and
// whether the month's budget leaked.
type YearTotal struct {
	Date        string
	TotalAmount int64
	Leaked      bool
}

// UserInfo is the authenticated user's profile.
type UserInfo struct {
	Name   string
	Email  string
	Gender string
	Age    int
}
