package domain

import "time"

type (
	// AdminStats is the governance dashboard snapshot polled from the
	// upstream. Values are opaque aggregates, nothing is derived here.
	AdminStats struct {
		TotalUsers     int
		TotalRetailers int
		TotalOrders    int
		PendingReturns int
		Revenue        float64
		FetchedAt      time.Time
	}

	// A ReturnRequest is a customer return claim. The fraud score is an
	// opaque backend-computed risk indicator, never derived client-side.
	ReturnRequest struct {
		RequestID  string
		OrderID    string
		ProductID  string
		Reason     string
		Condition  string
		Status     string
		FraudScore float64
		AdminNotes string
	}

	// A BulkUploadReport is the upstream's ingestion summary for a bulk
	// catalog file.
	BulkUploadReport struct {
		TotalRows  int
		AddedCount int
		ErrorCount int
		Errors     []string
	}

	// A SupportTicket is listed and resolved through the admin surface.
	SupportTicket struct {
		TicketID string
		UserID   string
		Subject  string
		Message  string
		Resolved bool
	}

	// An AccountRecord is a user or retailer row on the admin surface.
	AccountRecord struct {
		ID     string
		Name   string
		Role   string
		Active bool
	}
)
