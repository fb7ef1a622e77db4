// Package config defines the format-agnostic model of a pipeline
// configuration. The HCL loader translates parsed files into this model;
// everything downstream (capacity resolution, fragment synthesis, the
// orchestrator) consumes only this package and never touches file syntax.
//
// Values intentionally stay raw hcl.Expression fields. Deferring evaluation
// is what allows a single configuration attribute to be either a fixed
// literal or an expression resolved when the generated step runs; the
// expression adapter makes that split exactly once, during synthesis.
package config
