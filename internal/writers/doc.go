// Package writers turns rugate reports into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (text summary, TSV/CSV tables, JSON/JSONL/YAML).
//   • core stays domain-only; pipeline stays orchestration-only.
//   • JSON/JSONL/YAML go through pkg/api (v1) for a stable wire format.
package writers
