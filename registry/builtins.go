package registry

// RegisterBuiltins registers the full built-in block library and the
// adapter catalog entries those blocks provide. The engine calls this
// once at construction time against its own Registry/AdapterCatalog
// instances; there is no package-level global registry.
func RegisterBuiltins(r *Registry, adapters *AdapterCatalog) {
	registerTimeBlocks(r)
	registerSignalBlocks(r)
	registerMathBlocks(r)
	registerFieldBlocks(r)
	registerLayoutBlocks(r)
	registerGeometryBlocks(r)
	registerColorBlocks(r)
	registerRenderBlocks(r)
	registerLensBlocks(r, adapters)
}
