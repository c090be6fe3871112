package archive

// samplerKey identifies one material's reference to one of its
// sampler slots.
type samplerKey struct {
	material string
	slot     int
}

// TextureSamplerMappingManager records, per distinct texture name,
// every (material, sampler-index) site that references it and the
// order in which texture names are first seen (TextureSamplerMappingManager,
// MatIO.cpp: add_entry/from_mat). Each site gets a zero placeholder
// slot; nothing fills those slots with stream positions or back-patches
// sampler references afterwards.
type TextureSamplerMappingManager struct {
	names   []string
	entries map[string][]int // texture name -> one slot per referencing site, each left at 0
	refs    map[samplerKey]int
}

// NewTextureSamplerMappingManager returns an empty manager.
func NewTextureSamplerMappingManager() *TextureSamplerMappingManager {
	return &TextureSamplerMappingManager{
		entries: make(map[string][]int),
		refs:    make(map[samplerKey]int),
	}
}

// AddEntry registers that material's sampler slot references texture.
// Call once per sampler slot while walking a material's sampler list,
// in slot order.
func (m *TextureSamplerMappingManager) AddEntry(texture, material string, slot int) {
	if _, ok := m.entries[texture]; !ok {
		m.names = append(m.names, texture)
	}
	m.refs[samplerKey{material, slot}] = len(m.entries[texture])
	m.entries[texture] = append(m.entries[texture], 0)
}

// Textures returns the distinct texture names registered, in
// first-seen order — the order their sampler bodies should be
// emitted in.
func (m *TextureSamplerMappingManager) Textures() []string {
	return m.names
}
