// Package core contains the pure business rules of library circulation:
// the late-fee policy, identifier and catalog validation, and the error taxonomy.
//
// Nothing in this package reads the system clock or touches storage. Every
// time-dependent function receives "now" as a parameter, which keeps the rules
// testable without time mocking.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
