// Package recordcheck decodes JSON documents of {name, value} records and
// validates them.
//
// Each record kind (Strings, Colors) is a Variant with three steps:
//
//   - Parse: raw text -> ordered records (a *DecodeError is fatal)
//   - SchemaCheck: raw text against a JSON Schema, every violation collected
//   - FieldCheck: per-kind FieldPolicy over the records, fail-fast
//
// Validate/Run chain the three and fold them into a Result whose Outcome is
// valid or invalid. Field failures always decide the Outcome; schema
// violations do so only with SchemaGating and are advisory otherwise.
//
// Design policy:
//   - Keep only public APIs in the root package; put details under internal/.
//   - Report problems as Issues (JSON Pointer, code, message), never panic.
//   - The CLI lives under cmd/recordcheck.
//
// Typical usage:
//
//	res, err := recordcheck.Validate(ctx, recordcheck.KindColors, data)
//	if err != nil {
//		// malformed document, no Outcome
//	}
//	if !res.Valid() {
//		log.Println(res.Err())
//	}
package recordcheck
