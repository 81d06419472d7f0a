// Package fixtures provides catalog data and clocks shared by the feature tests.
package fixtures
