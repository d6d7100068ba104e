package subschema

// Package subschema provides:
//
// - A directional structural subset check between JSON Schema shapes (Subset)
// - A stable error model via Errors (path, offending pair, message line)
// - A resolver inlining $defs references and single-ref allOf aliases (Resolve)
// - A deterministic document codec for the supported wire subset (Decode/Encode/Load/Dump)
//
// Design policy:
// - Keep only public APIs in the root package; adjacent surfaces live in their own packages.
// - Place version stores under history/, CRD extraction under kubecrd/, and the CLI under cmd/subschema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  a, err := subschema.Load("schemas/old.json")
//  b, err := subschema.Load("schemas/new.json")
//  for _, e := range subschema.Subset(a, b) {
//      fmt.Println(e)
//  }
//
