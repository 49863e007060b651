// Package gen provides the domain model and code generation for OData
// metadata documents.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Metadata document ($metadata.xml)
//	        ↓
//	   load.Decode (validated decoded tree)
//	        ↓
//	   NewMetadata (domain model)
//	        ↓
//	   Graph (model + Config)
//	        ↓
//	   Dialect / Emitter (FileSet in memory)
//	        ↓
//	   Generator (staging directory, then swap into Target)
//
// # Key Types
//
//   - Metadata, Schema: the transformed model, one Schema per namespace
//   - Entity: entity and complex types with resolved TypeRefs
//   - Action, Function: sealed unions of bound and unbound variants,
//     consumed with type switches
//   - Graph: the model with its Config and qualified name lookups
//   - Dialect, Emitter: the interfaces implemented by output languages
//   - FileSet: generated files held in memory until written
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: the model cannot be emitted (for example a bound
//     operation whose binding type is not declared)
//   - ConfigError: configuration errors
//   - GenerationError: file set and file system errors
//
// Decoding errors are reported by the load package before a Graph exists.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./build"),
//	    gen.WithDialect(typescript.Dialect{}),
//	    gen.WithWorkers(4),
//	)
//
// or loaded from a YAML file with LoadConfigFile.
package gen
