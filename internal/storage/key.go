package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// NewKey builds a unique, URL-safe object key such as
// "motorbikes/honda-vision-59a-12345-1f3c9a2b.jpg".
func NewKey(folder, name, ext string) string {
	base := slug.Make(name)
	if base == "" {
		base = "file"
	}
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return path.Join(folder, base+"-"+id+strings.ToLower(ext))
}
