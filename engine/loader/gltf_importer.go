package loader

import (
	"fmt"
	"io"

	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/model"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for orchestrating a full glTF/GLB import.
// It combines the parser and extractors to produce a complete ImportedModel.
type gltfImporter interface {
	// Import loads a glTF/GLB file and extracts all mesh and material data
	// into an ImportedModel.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *model.ImportedModel: the fully populated imported model
	//   - error: error if import fails
	Import(path string) (*model.ImportedModel, error)

	// ImportReader loads a glTF document from a reader and extracts all data.
	// The reader should provide a complete glTF JSON or GLB binary stream.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//
	// Returns:
	//   - *model.ImportedModel: the fully populated imported model
	//   - error: error if import fails
	ImportReader(r io.Reader, isGLB bool) (*model.ImportedModel, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, isGLB bool) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(parser, "")
}

// importFromParser extracts meshes and materials from a parser that has
// already loaded a document.
//
// Parameters:
//   - parser: the glTF parser that has already loaded a document
//   - fallbackPath: optional file path used as a fallback for model naming
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackPath string) (*model.ImportedModel, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	meshExtractor := newGLTFMeshExtractor(parser)
	materialExtractor := newGLTFMaterialExtractor(parser)

	// Extract all meshes
	meshes, err := meshExtractor.ExtractAllMeshes()
	if err != nil {
		return nil, fmt.Errorf("mesh extraction failed: %w", err)
	}

	// Extract materials
	var materials []*common.ImportedMaterial
	if len(doc.Materials) > 0 {
		materials, err = materialExtractor.ExtractAllMaterials()
		if err != nil {
			return nil, fmt.Errorf("material extraction failed: %w", err)
		}
	}

	name := gltfExtractModelName(doc, fallbackPath)

	return &model.ImportedModel{
		Name:      name,
		Meshes:    meshes,
		Materials: gltfFlattenMaterials(materials),
	}, nil
}

// --- Helper Functions ---

// gltfExtractModelName derives a model name from the document asset or a file path fallback.
func gltfExtractModelName(doc *gltfDocument, fallbackPath string) string {
	// Try scene name first
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}

	if fallbackPath != "" {
		return fallbackPath
	}

	return "unnamed_model"
}

// gltfFlattenMaterials converts a slice of material pointers to a value slice.
func gltfFlattenMaterials(materials []*common.ImportedMaterial) []common.ImportedMaterial {
	if materials == nil {
		return nil
	}

	result := make([]common.ImportedMaterial, len(materials))
	for i, m := range materials {
		if m != nil {
			result[i] = *m
		}
	}

	return result
}
