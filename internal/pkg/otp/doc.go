// Package otp generates one-time verification codes.
//
// Codes are short-lived numeric challenges delivered out of band (SMS),
// used to prove ownership of a phone number during registration.
package otp
