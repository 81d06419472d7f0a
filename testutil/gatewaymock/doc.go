// Package gatewaymock provides a testify mock of the payment gateway capability.
package gatewaymock
