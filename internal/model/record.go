package model

// RawRecord is an order document exactly as decoded from the Cin7 API.
// Keys may be PascalCase or camelCase and values are loosely typed.
type RawRecord map[string]any
