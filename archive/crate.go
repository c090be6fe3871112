package archive

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/transact"
)

// PresetMetadata is the .rspreset structured-data JSON payload's two
// fields (g3d_crate.cpp's json["tool"]/json["date_created"]).
type PresetMetadata struct {
	Tool string `json:"tool"`
	Date string `json:"date_created"`
}

// metadataMarker is the literal text g3d_crate.cpp stashes inline
// (ahead of the structured JSON) in the preset's lone bone name, since
// .rspreset has no dedicated metadata section of its own.
const metadataMarker = "{BEGIN_STRUCTURED_DATA}"

// Preset is a single-material BRRES archive: one material, the
// textures its samplers reference, and only the srt0/clr0/pat0/chr0
// animations that target that material's name (§6 ".rspreset").
type Preset struct {
	Archive  Archive
	MatName  string
	SrcPath  string
	Metadata PresetMetadata
}

// Validate enforces the .rspreset single-material contract: exactly
// one material across exactly one model, and every animation in the
// archive must target that material's name. A mismatch is a
// semantic-rejection error (§7), never silently dropped.
func (p *Preset) Validate() error {
	if len(p.Archive.Models) != 1 {
		return fmt.Errorf("archive: .rspreset must contain exactly one model, got %d", len(p.Archive.Models))
	}
	mdl := p.Archive.Models[0]
	if len(mdl.Materials) != 1 {
		return fmt.Errorf("archive: .rspreset must contain exactly one material, got %d", len(mdl.Materials))
	}
	name := mdl.Materials[0].Name
	for _, ca := range p.Archive.ChrAnims {
		if ca.Name != name {
			return fmt.Errorf("archive: extraneous CHR0 animation %q included in a preset for material %q", ca.Name, name)
		}
	}
	return nil
}

// WriteRspreset validates p, stamps the metadata marker into a
// synthetic lone bone (the same "a bone is required for some reason"
// workaround the original carries, preserved faithfully since nothing
// in this spec's scope gives presets a dedicated metadata section),
// fills in Tool/Date, and writes the result as a BRRES archive.
func WriteRspreset(p *Preset, tool string, tx *transact.Transaction) ([]byte, error) {
	if err := p.Validate(); err != nil {
		if tx != nil {
			tx.Err("archive", err.Error())
		}
		return nil, err
	}

	meta := p.Metadata
	meta.Tool = tool
	meta.Date = time.Now().Format("January 2, 2006")
	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("archive: marshaling preset metadata: %w", err)
	}

	marker := fmt.Sprintf("RiiStudio %s; Source %s%s%s", tool, p.SrcPath, metadataMarker, payload)

	mdl := &p.Archive.Models[0]
	mdl.Skeleton = &bone.Skeleton{Bones: []bone.Bone{{Name: marker, ParentIndex: bone.NoParent, Visible: true}}}

	return WriteBRRES(&p.Archive, tx)
}
