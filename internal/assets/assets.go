package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_schemas
var Schemas embed.FS

// SchemaInfo pairs a registry name with its path under embedded_schemas.
type SchemaInfo struct {
	Name string
	Path string
}

// knownSchemas lists the schemas bundled with the binary.
var knownSchemas = []SchemaInfo{
	{Name: "manifest-v1.0.0", Path: "manifest/manifest-v1.0.0.json"},
}

func GetSchemasFS() fs.FS {
	if sub, err := fs.Sub(Schemas, "embedded_schemas"); err == nil {
		return sub
	}
	return Schemas
}

// GetSchema retrieves embedded schema bytes by path relative to embedded_schemas.
func GetSchema(relPath string) ([]byte, bool) {
	data, err := fs.ReadFile(GetSchemasFS(), relPath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// GetSchemaNames returns the registry of bundled schemas.
func GetSchemaNames() []SchemaInfo {
	out := make([]SchemaInfo, len(knownSchemas))
	copy(out, knownSchemas)
	return out
}
