// Package constants provides shared constants for the mood check-in application
package constants

import "fmt"

// ListOrder represents the sort order used when listing archived check-ins
type ListOrder string

const (
	// ListOrderDesc lists newest check-ins first
	ListOrderDesc ListOrder = "desc"
	// ListOrderAsc lists oldest check-ins first
	ListOrderAsc ListOrder = "asc"
)

// IsValid checks if the list order value is valid
func (o ListOrder) IsValid() bool {
	return o == ListOrderDesc || o == ListOrderAsc
}

// String returns the string representation of the list order
func (o ListOrder) String() string {
	return string(o)
}

// UnmarshalText lets configuration decoders validate the order while decoding
func (o *ListOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseListOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseListOrder parses a string into a ListOrder type
// Returns an error if the value is invalid
func ParseListOrder(s string) (ListOrder, error) {
	order := ListOrder(s)
	if !order.IsValid() {
		return "", fmt.Errorf("invalid list order: %s (must be 'desc' or 'asc')", s)
	}
	return order, nil
}

// SQL returns the ORDER BY direction keyword for the order
func (o ListOrder) SQL() string {
	if o == ListOrderAsc {
		return "ASC"
	}
	return "DESC"
}
