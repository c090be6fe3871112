package material

import "github.com/gc3dtools/librii/math32"

// CommonTransformModel is the texture-matrix convention a material's
// texture matrices were authored under; it changes how scale/rotate/
// translate combine into the final 3x4 matrix (§4.6, §9).
type CommonTransformModel uint8

const (
	TransformModelDefault CommonTransformModel = iota
	TransformModelMaya
	TransformModelXSI
	TransformModelMax
)

// CommonMappingMethod is the texture-coordinate generation method a
// texture matrix participates in.
type CommonMappingMethod uint8

const (
	MappingStandard CommonMappingMethod = iota
	MappingEnvironment
	MappingViewProjection
	MappingEnvironmentLight
	MappingEnvironmentSpecular
	MappingManualProjection
	MappingManualEnvironment
)

// mapModeEncoding is the 6-value on-disk encoding for CommonMappingMethod,
// grounded on MatIO.cpp's mapModeCvt: Standard=0, Environment(+Manual)=1,
// ViewProjection=2, EnvironmentLight=3, EnvironmentSpecular=4,
// ManualProjection=5 (an EGG-specific extension value).
func mapModeEncoding(m CommonMappingMethod) uint8 {
	switch m {
	case MappingEnvironment, MappingManualEnvironment:
		return 1
	case MappingViewProjection:
		return 2
	case MappingEnvironmentLight:
		return 3
	case MappingEnvironmentSpecular:
		return 4
	case MappingManualProjection:
		return 5
	default:
		return 0
	}
}

func mappingMethodFromEncoding(v uint8) CommonMappingMethod {
	switch v {
	case 1:
		return MappingEnvironment
	case 2:
		return MappingViewProjection
	case 3:
		return MappingEnvironmentLight
	case 4:
		return MappingEnvironmentSpecular
	case 5:
		return MappingManualProjection
	default:
		return MappingStandard
	}
}

// TexMatrix is one texture matrix's edit-friendly representation: a
// 2D scale/rotate/translate SRT plus the projection/mapping metadata
// that feeds texgen (§4.6).
type TexMatrix struct {
	Scale     math32.Vector2
	Rotate    float32 // radians
	Translate math32.Vector2

	CamIdx   int8
	LightIdx int8

	TransformModel CommonTransformModel
	Method         CommonMappingMethod
	Projection     uint8 // texgen func, copied from the paired TexGen
}

// texMatrixFlags packs the per-matrix "identity of scale/rotate/translate"
// bits MatIO.cpp's BuildTexMatrixFlags computes, bit 0 always set (matrix
// present), bits 1-3 identity flags.
func texMatrixFlags(m TexMatrix) uint32 {
	var f uint32 = 1
	if m.Scale.X == 1 && m.Scale.Y == 1 {
		f |= 1 << 1
	}
	if m.Rotate == 0 {
		f |= 1 << 2
	}
	if m.Translate.X == 0 && m.Translate.Y == 0 {
		f |= 1 << 3
	}
	return f
}
