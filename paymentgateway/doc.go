// Package paymentgateway holds the outcome types shared between the payment features
// and gateway implementations, plus Simulated, an in-process gateway for demos and tests.
//
// Features consume the gateway through their own small interfaces, so any client
// of a real payment provider can be plugged in as long as it returns these outcomes
// and reports transport problems as errors.
package paymentgateway
