package dsl

import eskema "github.com/eskema/eskema"

// Typed entry points. Each seeds the pre-coercion constraint list with the
// matching base type check.

// String starts a chain expecting a string value.
func String() *Chain { return seeded(eskema.IsString()) }

// Int starts a chain expecting an integer value.
func Int() *Chain { return seeded(eskema.IsInt()) }

// Double starts a chain expecting a floating-point value.
func Double() *Chain { return seeded(eskema.IsDouble()) }

// Number starts a chain expecting any numeric value.
func Number() *Chain { return seeded(eskema.IsNumber()) }

// Bool starts a chain expecting a bool value.
func Bool() *Chain { return seeded(eskema.IsBool()) }

// Map starts a chain expecting a keyed map.
func Map() *Chain { return seeded(eskema.IsMap()) }

// List starts a chain expecting a sequence.
func List() *Chain { return seeded(eskema.IsList()) }

// Value starts an unconstrained chain, useful ahead of custom transforms.
func Value() *Chain { return &Chain{} }
