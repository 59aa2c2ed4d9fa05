// Package netplanlint validates netplan network configuration documents.
//
// A document is YAML text with a top-level "network" mapping. It is checked
// against a draft-7 schema built by the schema package, in which a shared set
// of interface properties is injected into every interface category before
// compilation. The first violation is reported as an *Issue whose message
// has one of these shapes:
//
//	Unexpected keyword <path>/<key>
//	Duplicate item <path>/<element>
//	Unexpected value <path>: <value>
//
// Text that is not YAML yields "parser failed to parse the file".
//
// Typical usage:
//
//	s, err := schema.Build()
//	if err != nil {
//		return err
//	}
//	if err := netplanlint.Validate(s, text); err != nil {
//		fmt.Println(err)
//	}
//
// A Validator created with New carries a logger, metrics and a message
// translator, and is safe for concurrent use. ValidateFiles checks many files
// with a bounded worker pool.
package netplanlint
