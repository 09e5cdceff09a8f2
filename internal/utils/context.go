// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ConsumerIDCtxKey is the key used to store the authenticated consumer's
// formatted identifier in the context. Used together with
// GetConsumerIDFromContext for type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ConsumerIDCtxKey, "USER0042")
var ConsumerIDCtxKey = contextKey("consumerID")

// GetConsumerIDFromContext retrieves the consumer identifier from the context.
//
// Returns the consumer ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetConsumerIDFromContext(ctx context.Context) (string, bool) {
	consumerID, ok := ctx.Value(ConsumerIDCtxKey).(string)
	return consumerID, ok
}
