// Package hcl provides the concrete HCL implementation for pipeline
// configuration loading. It is responsible for all file parsing and for
// the HCL-to-model translation; nothing outside this package touches file
// syntax.
package hcl
