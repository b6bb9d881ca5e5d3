// Package sms is the outbound SMS capability used for OTP delivery.
package sms

import "context"

// Sender delivers a one-time code to a mobile number. Delivery is a single
// synchronous attempt; the caller decides what a failure means.
type Sender interface {
	Send(ctx context.Context, mobile, code string) error
}
