// rspreset packages a single material (plus the texture its sampler
// references and a placeholder root bone) into a .rspreset crate (C9).
// Building the full scene-tree-JSON-to-archive importer is explicitly
// out of scope (the scene-tree JSON importer surface beyond its data
// contract, per this module's non-goals) — this tool exercises the
// crate writer directly from flags, the same way g3d_crate.cpp's
// WriteRSPreset is invoked from an editor's already-in-memory material
// rather than from a raw scene file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gc3dtools/librii/archive"
	"github.com/gc3dtools/librii/bone"
	"github.com/gc3dtools/librii/gctex"
	"github.com/gc3dtools/librii/gx"
	"github.com/gc3dtools/librii/material"
	"github.com/gc3dtools/librii/mesh"
	"github.com/gc3dtools/librii/transact"
)

var (
	oMat  = flag.String("mat", "Untitled Material", "material name")
	oTex  = flag.String("tex", "", "texture name the material's sampler references (optional)")
	oTool = flag.String("tool", "librii", "tool name stamped into the preset metadata")
	oSrc  = flag.String("src", "", "source path stamped into the preset metadata")
	oOut  = flag.String("o", "", "output .rspreset file (required)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rspreset -mat name [-tex texture] [-tool name] [-src path] -o out.rspreset\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *oOut == "" {
		usage()
		os.Exit(1)
	}

	mat := material.BrresMaterial{
		Name:    *oMat,
		GenMode: material.GenMode{NumTexGens: 1, NumChannels: 1, NumTevStages: 1},
		DL:      gx.DefaultMaterialDLData(),
	}
	var textures []gctex.TEX0
	if *oTex != "" {
		mat.Samplers = []material.BinarySampler{{
			Texture:   *oTex,
			MinFilter: material.FilterLinear,
			MagFilter: material.FilterLinear,
		}}
		textures = append(textures, gctex.TEX0{
			Name: *oTex, Width: 1, Height: 1, Format: gctex.RGBA32,
			Data: make([]byte, 1*1*4),
		})
	}

	skel, err := bone.NewSkeleton([]bone.Bone{{Name: "root", ParentIndex: bone.NoParent, Visible: true}})
	if err != nil {
		abort(err)
	}

	m := mesh.NewVertexDescriptor()
	m.SetAttribute(mesh.Position, mesh.EncodingDirect)

	preset := &archive.Preset{
		MatName: *oMat,
		SrcPath: *oSrc,
		Archive: archive.Archive{
			Name:     *oMat,
			Textures: textures,
			Models: []archive.Model{{
				Name:      *oMat,
				Skeleton:  skel,
				Materials: []material.BrresMaterial{mat},
				Meshes: []*mesh.Mesh{{
					Name:    *oMat + "_mesh",
					Visible: true,
					VCD:     m,
				}},
			}},
		},
	}

	tx := transact.New(*oMat, func(msg transact.Message) {
		fmt.Fprintf(os.Stderr, "rspreset: [%s] %s: %s\n", msg.Class, msg.Domain, msg.Body)
	})
	out, err := archive.WriteRspreset(preset, *oTool, tx)
	if err != nil {
		abort(err)
	}

	if err := os.WriteFile(*oOut, out, 0644); err != nil {
		abort(err)
	}
}

func abort(err error) {
	fmt.Fprintln(os.Stderr, "rspreset:", err)
	os.Exit(1)
}
