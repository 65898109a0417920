// Package pipeline sweeps assembled rugate stacks through a tmm.Evaluator and
// collects one reflectance curve per variant.
//
// The only contract to implement is tmm.Evaluator (Evaluate). The sweep is
// fail-fast: the first rejected
// wavelength is logged with the full stack and returned as a *SweepError;
// no partial curves are produced.
package pipeline
