// Package shell contains the infrastructure side of the circulation features:
// the contracts every command and query handler fulfills, the shared result type,
// correlation ids, and the observability helpers used by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
