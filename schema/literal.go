package schema

import _ "embed"

// networkSchema is the base document. Interface categories carry their own
// keys only; shared keys are injected by Build.
//
//go:embed network.schema.yaml
var networkSchema []byte

// commonProperties is the fragment merged into every insertion point.
//
//go:embed common.yaml
var commonProperties []byte

// ResourceURL identifies the assembled document inside the engine. Nothing is
// fetched from it.
const ResourceURL = "https://netplanlint.local/network.schema.json"
