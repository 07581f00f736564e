package enums

import "fmt"

// InquiryStatus tracks where a customer inquiry sits in the review pipeline.
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusReviewed InquiryStatus = "reviewed"
	InquiryStatusInvoiced InquiryStatus = "invoiced"
)

var validInquiryStatuses = []InquiryStatus{
	InquiryStatusPending,
	InquiryStatusReviewed,
	InquiryStatusInvoiced,
}

// String implements fmt.Stringer.
func (s InquiryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InquiryStatus.
func (s InquiryStatus) IsValid() bool {
	for _, candidate := range validInquiryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInquiryStatus converts raw input into an InquiryStatus.
func ParseInquiryStatus(value string) (InquiryStatus, error) {
	for _, candidate := range validInquiryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inquiry status %q", value)
}
