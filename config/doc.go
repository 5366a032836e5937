// Package config loads and validates the YAML run configuration: bare
// couplings, random seed, volume targets, sweep schedule, strictness and
// file locations. Parse fills a Config from YAML, Validate rejects
// inconsistent runs before any geometry is touched.
//
// # Error policy
//
// Malformed YAML and unknown fields wrap ErrBadConfig; semantic problems
// (negative sweeps, out-of-range strictness) wrap ErrBadValue with the
// offending field named. All validation happens eagerly in Load.
package config
