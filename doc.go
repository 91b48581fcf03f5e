package schemaobject

// Package schemaobject provides:
//
// - Declarative field shapes normalized into canonical descriptors (Field/Normalize/NormalizeSchema)
// - Object types whose every read and write coerces and validates (Define/Type/Object)
// - Typed, optionally unique sequences backing array fields (Array)
// - A stable error model via Issues (JSON Pointer, code, message) collected per instance
//
// Design policy:
// - Reads and writes never panic or return errors; failures accumulate in Object.Errors.
// - A Type's descriptors are normalized once and shared read-only by every instance.
// - Array and object fields keep their container identity across reassignment.
// - Put YAML schema import under schemayaml/, wire formats under codec/, and the CLI under cmd/schemaobject.
//
// Typical usage:
//
//  user := schemaobject.MustDefine(schemaobject.Shape{
//      "name": schemaobject.Field{Type: schemaobject.KindString, MinLength: schemaobject.Length(1)},
//      "age":  schemaobject.Field{Type: schemaobject.KindNumber, Min: schemaobject.Bound(0)},
//      "tags": schemaobject.Field{Type: schemaobject.List(schemaobject.KindString), Unique: true},
//  }, schemaobject.Options{})
//
//  u := user.New(map[string]any{"name": "alice", "age": "42"})
//  u.Get("age")   // 42.0
//  u.Set("age", "old")
//  u.Errors()     // [type_mismatch at /age]
//  b, _ := json.Marshal(u)
